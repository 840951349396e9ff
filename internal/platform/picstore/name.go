package picstore

import (
	"fmt"
	"strings"
)

const maxNameLength = 255

// Characters that must never appear in an object name. Path separators are
// rejected so a name can never escape the store's flat namespace.
const forbiddenChars = "/\\<>:\"|?*\x00"

// Windows-reserved stems; objects may be mirrored onto filesystems that
// refuse these regardless of extension.
var reservedStems = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {},
	"com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {},
	"lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

// ValidateName enforces the filename policy. Every store operation calls it
// before touching the network; a violation yields InvalidPath without any
// remote request.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("object name is empty")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("object name exceeds %d characters: %d", maxNameLength, len(name))
	}
	if strings.ContainsAny(name, forbiddenChars) {
		return fmt.Errorf("object name %q contains a reserved character", name)
	}
	for _, r := range name {
		if r < 0x20 {
			return fmt.Errorf("object name contains a control character")
		}
	}
	if name == "." || name == ".." || strings.HasPrefix(name, "..") {
		return fmt.Errorf("object name %q is a relative path element", name)
	}
	stem := strings.ToLower(name)
	if i := strings.IndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}
	if _, ok := reservedStems[stem]; ok {
		return fmt.Errorf("object name %q uses a platform-reserved stem", name)
	}
	return nil
}
