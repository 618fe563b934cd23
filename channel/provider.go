package channel

import (
	"golang.org/x/oauth2"
	endpointgithub "golang.org/x/oauth2/github"
	endpointgoogle "golang.org/x/oauth2/google"
)

// Surface dimensions match the fixed chooser size of the web client.
const (
	surfaceWidth  = 500
	surfaceHeight = 600
)

// ProviderSpec is everything that distinguishes one provider from another:
// display styling, the chooser's fixed candidate list, and the endpoint
// used to build the surface URL. Protocol behavior is shared; the spec is
// configuration data.
type ProviderSpec struct {
	Name        string
	DisplayName string
	AccentColor string
	Candidates  []Identity
	OAuth       oauth2.Config
	Width       int
	Height      int
}

// SurfaceSize returns the requested surface dimensions, falling back to the
// fixed default when unset.
func (p ProviderSpec) SurfaceSize() (width, height int) {
	width, height = p.Width, p.Height
	if width <= 0 {
		width = surfaceWidth
	}
	if height <= 0 {
		height = surfaceHeight
	}
	return width, height
}

// ChooserURL builds the URL the surface is opened at. The handshake is
// simulated end to end, so the URL is informational: it is never fetched,
// but it matches what a real authorization redirect would look like.
func (p ProviderSpec) ChooserURL(state string) string {
	return p.OAuth.AuthCodeURL(state)
}

// GoogleProvider returns the Google chooser spec with its fixed candidate
// identities.
func GoogleProvider() ProviderSpec {
	return ProviderSpec{
		Name:        "google",
		DisplayName: "Google",
		AccentColor: "#4285F4",
		OAuth: oauth2.Config{
			ClientID: "coursia-web",
			Endpoint: endpointgoogle.Endpoint,
			Scopes:   []string{"openid", "email", "profile"},
		},
		Candidates: []Identity{
			{Provider: "google", Email: "sofia.marin@gmail.com", Name: "Sofia Marin", Role: "student"},
			{Provider: "google", Email: "liam.okafor@gmail.com", Name: "Liam Okafor", Role: "creator"},
			{Provider: "google", Email: "workspace@brightacademy.edu", Name: "Bright Academy", Role: "institution"},
		},
	}
}

// GitHubProvider returns the GitHub chooser spec with its fixed candidate
// identities.
func GitHubProvider() ProviderSpec {
	return ProviderSpec{
		Name:        "github",
		DisplayName: "GitHub",
		AccentColor: "#24292F",
		OAuth: oauth2.Config{
			ClientID: "coursia-web",
			Endpoint: endpointgithub.Endpoint,
			Scopes:   []string{"read:user", "user:email"},
		},
		Candidates: []Identity{
			{Provider: "github", Email: "devmara@users.noreply.github.com", Name: "Mara Lindqvist", Role: "student"},
			{Provider: "github", Email: "tobias.reine@users.noreply.github.com", Name: "Tobias Reine", Role: "creator"},
		},
	}
}
