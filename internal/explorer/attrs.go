package explorer

import (
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"strconv"
)

// permBits are the mode bits SetPermissions accepts: the rwx triples plus
// setuid, setgid, and sticky.
const permBits = fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky

// ParseMode converts an octal mode string ("755", "0644", "2750") into a
// file mode, rejecting malformed or out-of-range input with ErrInvalidMode.
func ParseMode(s string) (fs.FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil || v > 0o7777 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}

	mode := fs.FileMode(v & 0o777)
	if v&0o4000 != 0 {
		mode |= fs.ModeSetuid
	}
	if v&0o2000 != 0 {
		mode |= fs.ModeSetgid
	}
	if v&0o1000 != 0 {
		mode |= fs.ModeSticky
	}
	return mode, nil
}

// SetPermissions applies mode to path. Only permission bits are accepted;
// anything else fails with ErrInvalidMode.
func (e *Engine) SetPermissions(path string, mode fs.FileMode) error {
	if mode&^permBits != 0 {
		return fmt.Errorf("%w: %v", ErrInvalidMode, mode)
	}
	if _, err := os.Lstat(path); err != nil {
		return classify(err)
	}
	if err := os.Chmod(path, mode); err != nil {
		return classify(err)
	}
	return nil
}

// SetOwnership changes the owning user and/or group of path. An empty owner
// or group leaves that side unchanged. Names are resolved through the system
// database; numeric ids are accepted as-is.
func (e *Engine) SetOwnership(path, owner, group string) error {
	if _, err := os.Lstat(path); err != nil {
		return classify(err)
	}

	uid, err := lookupID(owner, func(name string) (string, error) {
		u, err := user.Lookup(name)
		if err != nil {
			return "", err
		}
		return u.Uid, nil
	})
	if err != nil {
		return err
	}

	gid, err := lookupID(group, func(name string) (string, error) {
		g, err := user.LookupGroup(name)
		if err != nil {
			return "", err
		}
		return g.Gid, nil
	})
	if err != nil {
		return err
	}

	if err := os.Chown(path, uid, gid); err != nil {
		return classify(err)
	}
	return nil
}

// lookupID resolves a principal name to a numeric id, with -1 meaning
// "leave unchanged" for the empty name.
func lookupID(name string, resolve func(string) (string, error)) (int, error) {
	if name == "" {
		return -1, nil
	}
	if id, err := strconv.Atoi(name); err == nil && id >= 0 {
		return id, nil
	}
	id, err := resolve(name)
	if err != nil {
		return -1, fmt.Errorf("%w: %q", ErrUnknownPrincipal, name)
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return -1, fmt.Errorf("%w: %q", ErrUnknownPrincipal, name)
	}
	return n, nil
}
