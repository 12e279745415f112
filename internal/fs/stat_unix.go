//go:build linux || darwin || freebsd

package fs

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

type status struct {
	mode os.FileMode
	size int64
	stat Stat
}

func statPath(path string) (status, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return status{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return fromStatT(&st), nil
}

func lstatPath(path string) (status, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return status{}, &os.PathError{Op: "lstat", Path: path, Err: err}
	}
	return fromStatT(&st), nil
}

func fromStatT(st *unix.Stat_t) status {
	return status{
		mode: fileMode(uint32(st.Mode)),
		size: int64(st.Size),
		stat: Stat{
			Dev:   uint64(st.Dev),
			Ino:   uint64(st.Ino),
			Rdev:  uint64(st.Rdev),
			Nlink: uint64(st.Nlink),
			Uid:   st.Uid,
			Gid:   st.Gid,
			Atime: time.Unix(st.Atim.Unix()),
			Mtime: time.Unix(st.Mtim.Unix()),
			Ctime: time.Unix(st.Ctim.Unix()),
		},
	}
}

// fileMode converts a raw st_mode into an os.FileMode.
func fileMode(raw uint32) os.FileMode {
	mode := os.FileMode(raw & 0o777)
	switch raw & unix.S_IFMT {
	case unix.S_IFDIR:
		mode |= os.ModeDir
	case unix.S_IFLNK:
		mode |= os.ModeSymlink
	case unix.S_IFBLK:
		mode |= os.ModeDevice
	case unix.S_IFCHR:
		mode |= os.ModeDevice | os.ModeCharDevice
	case unix.S_IFIFO:
		mode |= os.ModeNamedPipe
	case unix.S_IFSOCK:
		mode |= os.ModeSocket
	}
	if raw&unix.S_ISUID != 0 {
		mode |= os.ModeSetuid
	}
	if raw&unix.S_ISGID != 0 {
		mode |= os.ModeSetgid
	}
	if raw&unix.S_ISVTX != 0 {
		mode |= os.ModeSticky
	}
	return mode
}

// DeviceNumbers splits a device id into its major and minor numbers.
func DeviceNumbers(rdev uint64) (major, minor uint32) {
	return unix.Major(rdev), unix.Minor(rdev)
}
