package buffer

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Size is the capacity of an EEPROM image in bytes.
const Size = 256

// ErrIO marks failures to open, read or write an image file.
var ErrIO = errors.New("image i/o")

// Image is a fixed-size EEPROM image. Offsets are in [0, Size).
type Image [Size]byte

// Load reads the first Size bytes of filename. A shorter file leaves the
// remainder zeroed, a longer one is truncated.
func Load(filename string) (*Image, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	img := new(Image)
	if _, err := io.ReadFull(f, img[:]); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, filename, err)
	}
	return img, nil
}

// Save writes exactly Size bytes to filename, creating or truncating it.
// The write is not atomic; a failure part way leaves a truncated file.
func (img *Image) Save(filename string) error {
	if err := os.WriteFile(filename, img[:], 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func (img *Image) Clone() *Image {
	c := *img
	return &c
}

func (img *Image) Bytes() []byte {
	return img[:]
}

func (img *Image) GetByte(offset int) (byte, bool) {
	if offset < 0 || offset >= Size {
		return 0, false
	}
	return img[offset], true
}

func (img *Image) SetByte(offset int, value byte) bool {
	if offset < 0 || offset >= Size {
		return false
	}
	img[offset] = value
	return true
}

func (img *Image) Equal(other *Image) bool {
	return *img == *other
}

// Diff returns the offsets at which a and b differ, ascending.
func Diff(a, b *Image) []int {
	var offsets []int
	for i := 0; i < Size; i++ {
		if a[i] != b[i] {
			offsets = append(offsets, i)
		}
	}
	return offsets
}
