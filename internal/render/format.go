package render

import (
	"fmt"
	"io/fs"
	"time"
)

// Mode renders a file mode the way ls does: type letter plus three rwx
// triplets, with setuid/setgid shown as s/S in the execute column and the
// sticky bit as t/T. fs.FileMode.String puts those bits in the prefix
// instead, which no one reading a listing expects.
func Mode(m fs.FileMode) string {
	var b [10]byte

	switch {
	case m&fs.ModeSymlink != 0:
		b[0] = 'l'
	case m.IsDir():
		b[0] = 'd'
	default:
		b[0] = '-'
	}

	perm := m.Perm()
	const rwx = "rwxrwxrwx"
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			b[i+1] = rwx[i]
		} else {
			b[i+1] = '-'
		}
	}

	overlay := func(pos int, set bool, exec, noExec byte) {
		if !set {
			return
		}
		if b[pos] == 'x' {
			b[pos] = exec
		} else {
			b[pos] = noExec
		}
	}
	overlay(3, m&fs.ModeSetuid != 0, 's', 'S')
	overlay(6, m&fs.ModeSetgid != 0, 's', 'S')
	overlay(9, m&fs.ModeSticky != 0, 't', 'T')

	return string(b[:])
}

// Size renders a byte count humanly. Whole bytes stay integral, scaled
// units get two decimals.
func Size(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	value := float64(bytes)
	for _, suffix := range []string{"KB", "MB", "GB", "TB"} {
		value /= unit
		if value < unit || suffix == "TB" {
			return fmt.Sprintf("%.2f %s", value, suffix)
		}
	}
	return fmt.Sprintf("%d B", bytes)
}

// Time renders a timestamp for listings.
func Time(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
