package pptx

import "fmt"

// Version information written into docProps/app.xml.
const (
	VersionMajor = 0
	VersionMinor = 3
	VersionPatch = 0
)

// Version is the full version string of the deck writer.
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)

// Application is the generator name recorded in document properties.
const Application = "GoDeck"
