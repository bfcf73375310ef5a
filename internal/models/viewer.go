package models

// Viewer is the identity context eligibility is evaluated against:
// either anonymous or an authenticated user.
type Viewer struct {
	UserID        int64
	Authenticated bool
}

// Anonymous returns the viewer context for an unauthenticated request.
func Anonymous() Viewer {
	return Viewer{}
}

// User returns the viewer context for an authenticated user.
func User(id int64) Viewer {
	return Viewer{UserID: id, Authenticated: true}
}
