//go:build !(linux || darwin || freebsd)

package fs

import "os"

type status struct {
	mode os.FileMode
	size int64
	stat Stat
}

func statPath(path string) (status, error) {
	info, err := os.Stat(path)
	if err != nil {
		return status{}, err
	}
	return fromFileInfo(info), nil
}

func lstatPath(path string) (status, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return status{}, err
	}
	return fromFileInfo(info), nil
}

// Without device and inode numbers every entry shares one identity.
func fromFileInfo(info os.FileInfo) status {
	mt := info.ModTime()
	return status{
		mode: info.Mode(),
		size: info.Size(),
		stat: Stat{Nlink: 1, Atime: mt, Mtime: mt, Ctime: mt},
	}
}

func DeviceNumbers(rdev uint64) (major, minor uint32) {
	return uint32(rdev >> 8), uint32(rdev & 0xff)
}
