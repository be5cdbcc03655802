package explorer

import (
	"io/fs"
	"os"
	"os/user"
	"strconv"
	"syscall"
)

// Stat reads the metadata of one path. The kind reflects the entry itself
// (symlinks are reported as symlinks, not their targets); size, permission
// bits, ownership, and modification time follow the link target, matching
// stat semantics. A dangling symlink keeps the link's own attributes.
func (e *Engine) Stat(path string) (EntryMetadata, error) {
	linfo, err := os.Lstat(path)
	if err != nil {
		return EntryMetadata{}, classify(err)
	}
	return metadataFrom(path, linfo), nil
}

// metadataFrom builds EntryMetadata from an lstat result, resolving symlink
// attributes through the target when it exists.
func metadataFrom(path string, linfo fs.FileInfo) EntryMetadata {
	info := linfo
	if linfo.Mode()&fs.ModeSymlink != 0 {
		if target, err := os.Stat(path); err == nil {
			info = target
		}
	}

	meta := EntryMetadata{
		Kind:       kindOf(linfo.Mode()),
		Size:       info.Size(),
		Mode:       info.Mode(),
		ModifiedAt: info.ModTime(),
	}
	if info.IsDir() {
		meta.Size = 0
	}
	meta.Owner, meta.Group = ownership(info)
	return meta
}

// ownership resolves the owning user and group names, falling back to the
// numeric ids when the system database has no entry.
func ownership(info fs.FileInfo) (owner, group string) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return "", ""
	}

	owner = strconv.FormatUint(uint64(st.Uid), 10)
	if u, err := user.LookupId(owner); err == nil {
		owner = u.Username
	}

	group = strconv.FormatUint(uint64(st.Gid), 10)
	if g, err := user.LookupGroupId(group); err == nil {
		group = g.Name
	}
	return owner, group
}
