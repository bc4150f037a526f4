package common

import (
	"os"
	"strconv"

	"github.com/spaolacci/murmur3"
)

func IsExist(f string) bool {
	_, err := os.Stat(f)
	return err == nil || os.IsExist(err)
}

func Min(a, b int) int {
	if a > b {
		return b
	}
	return a
}

func HashString(s string) string {
	return strconv.FormatUint(murmur3.Sum64([]byte(s)), 16)
}
