package artifact

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/klauspost/compress/zip"
)

// BootstrapName is the entry name the provided.al2/al2023 runtimes execute.
const BootstrapName = "bootstrap"

// Zip writes a single-entry deflate archive at archive whose only entry is
// binary renamed to BootstrapName. The file mode of binary is preserved.
func Zip(binary, archive string) (err error) {
	log.Printf("packaging %s into %s", binary, archive)

	src, err := os.Open(binary)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = BootstrapName
	header.Method = zip.Deflate

	dst, err := os.Create(archive)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dst.Close(); err == nil {
			err = cerr
		}
	}()

	w := zip.NewWriter(dst)
	entry, err := w.CreateHeader(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(entry, src); err != nil {
		return fmt.Errorf("compress %s: %w", binary, err)
	}
	return w.Close()
}

// Read returns the raw bytes of an archive for upload.
func Read(archive string) ([]byte, error) {
	contents, err := os.ReadFile(archive)
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", archive, err)
	}
	return contents, nil
}
