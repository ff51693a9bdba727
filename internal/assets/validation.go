package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that an asset name can safely become a filename
// under the asset directory. Names are bare identifiers: no separators, no
// dots, so neither traversal ("../x") nor extension games ("style.css.bak")
// get past the loader.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidAssetName, name)
	case strings.Contains(name, "."):
		return fmt.Errorf("%w: %q contains a dot", ErrInvalidAssetName, name)
	}
	return nil
}
