package identity

// Identity is the authenticated user as reported by the identity endpoint.
// It is overwritten wholesale on every successful resolution, never partially
// updated, and doubles as the offline fallback when the endpoint is
// unreachable.
type Identity struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	PictureURL string `json:"picture"`
}

// Empty reports whether the identity carries no information, which is what
// dependent UI receives when resolution fails and no cached value exists.
func (i Identity) Empty() bool {
	return i == Identity{}
}
