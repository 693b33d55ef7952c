package rust

// Crate describes a Cargo dependency a template injects into the
// manifest on top of the configured ones.
type Crate interface {
	ID() string
	Version() string
	Features() []string
}

// actixWeb is the HTTP framework the web-server template binds.
type actixWeb struct{}

func (actixWeb) ID() string         { return "actix-web" }
func (actixWeb) Version() string    { return "4" }
func (actixWeb) Features() []string { return nil }

// actixFiles serves the generated static pages directory.
type actixFiles struct{}

func (actixFiles) ID() string         { return "actix-files" }
func (actixFiles) Version() string    { return "0.6.2" }
func (actixFiles) Features() []string { return nil }

// WebServerCrates returns the dependencies the web-server template
// needs.
func WebServerCrates() []Crate {
	return []Crate{actixWeb{}, actixFiles{}}
}
