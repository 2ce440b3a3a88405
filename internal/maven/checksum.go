package maven

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rrf-tools/nexus-cli/util/common/errors"
)

// ChecksumExtension is appended to an asset name to get its md5 companion.
const ChecksumExtension = ".md5"

// FileMD5 returns the hex md5 of the file at path.
func FileMD5(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h := md5.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyMD5 compares path against the digest stored in sumPath. Only the
// first field of the checksum file is used, so "<digest>  <name>" works.
func VerifyMD5(path, sumPath string) error {
	data, err := os.ReadFile(sumPath)
	if err != nil {
		return err
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return errors.NewChecksumError(path, "", "empty checksum file")
	}
	expected := strings.ToLower(fields[0])

	actual, err := FileMD5(path)
	if err != nil {
		return err
	}
	if actual != expected {
		return errors.NewChecksumError(path, expected, actual)
	}
	return nil
}
