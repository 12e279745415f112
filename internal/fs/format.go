package fs

import (
	"os"
	"os/user"
	"strconv"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

const timeLayout = "2006-01-02 15:04:05"

// ModeLine renders mode the way ls -l does, e.g. "drwxr-xr-x".
func ModeLine(mode os.FileMode) string {
	var b [10]byte

	switch {
	case mode&os.ModeDir != 0:
		b[0] = 'd'
	case mode&os.ModeSymlink != 0:
		b[0] = 'l'
	case mode&os.ModeCharDevice != 0:
		b[0] = 'c'
	case mode&os.ModeDevice != 0:
		b[0] = 'b'
	case mode&os.ModeNamedPipe != 0:
		b[0] = 'p'
	case mode&os.ModeSocket != 0:
		b[0] = 's'
	default:
		b[0] = '-'
	}

	const rwx = "rwxrwxrwx"
	perm := mode.Perm()
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			b[i+1] = rwx[i]
		} else {
			b[i+1] = '-'
		}
	}

	special := func(idx int, set bool, lower byte) {
		if !set {
			return
		}
		if b[idx] == 'x' {
			b[idx] = lower
		} else {
			b[idx] = lower - ('a' - 'A')
		}
	}
	special(3, mode&os.ModeSetuid != 0, 's')
	special(6, mode&os.ModeSetgid != 0, 's')
	special(9, mode&os.ModeSticky != 0, 't')

	return string(b[:])
}

// SizeLine renders a byte count in SI units ("4.1 kB").
func SizeLine(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.Bytes(uint64(size))
}

// TimeLine renders t in UTC.
func TimeLine(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

var (
	namesMu sync.Mutex
	owners  = map[uint32]string{}
	groups  = map[uint32]string{}
)

// OwnerName resolves a uid, falling back to the number.
func OwnerName(uid uint32) string {
	return lookupName(owners, uid, func(id string) (string, error) {
		u, err := user.LookupId(id)
		if err != nil {
			return "", err
		}
		return u.Username, nil
	})
}

// GroupName resolves a gid, falling back to the number.
func GroupName(gid uint32) string {
	return lookupName(groups, gid, func(id string) (string, error) {
		g, err := user.LookupGroupId(id)
		if err != nil {
			return "", err
		}
		return g.Name, nil
	})
}

func lookupName(cache map[uint32]string, id uint32, lookup func(string) (string, error)) string {
	namesMu.Lock()
	defer namesMu.Unlock()

	if name, ok := cache[id]; ok {
		return name
	}
	num := strconv.FormatUint(uint64(id), 10)
	name, err := lookup(num)
	if err != nil || name == "" {
		name = num
	}
	cache[id] = name
	return name
}
