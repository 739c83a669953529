package backend

import "math"

// SubStorage exposes a fixed window of an underlying Storage as a Storage of its own.
type SubStorage struct {
	underlying Storage
	offset     uint64
	size       uint64
}

// Sub returns a window of size bytes starting at offset of u. The window does
// not own u: closing it leaves u untouched.
func Sub(u Storage, offset, size uint64) Storage {
	return SubStorage{
		underlying: u,
		offset:     offset,
		size:       size,
	}
}

// Len returns the window size, clipped to what the underlying storage holds.
func (s SubStorage) Len() (uint64, error) {
	total, err := s.underlying.Len()
	if err != nil {
		return 0, err
	}
	switch {
	case total <= s.offset:
		return 0, nil
	case total-s.offset < s.size:
		return total - s.offset, nil
	default:
		return s.size, nil
	}
}

func (s SubStorage) Read(offset uint64, n int) ([]byte, error) {
	off, err := s.translate(offset, n)
	if err != nil {
		return nil, err
	}
	return s.underlying.Read(off, n)
}

func (s SubStorage) Write(offset uint64, data []byte) error {
	off, err := s.translate(offset, len(data))
	if err != nil {
		return err
	}
	return s.underlying.Write(off, data)
}

// SetLen resizes the underlying storage so the window ends at n. It is only
// allowed when the window is the tail of the underlying storage, since bytes
// after the window may belong to someone else.
func (s SubStorage) SetLen(n uint64) error {
	if n > s.size {
		return ErrInvalidOffset
	}
	total, err := s.underlying.Len()
	if err != nil {
		return err
	}
	if total > s.offset+s.size {
		return ErrInvalidOffset
	}
	return s.underlying.SetLen(s.offset + n)
}

func (s SubStorage) SyncData(eventual bool) error {
	return s.underlying.SyncData(eventual)
}

func (s SubStorage) Close() error {
	return nil
}

func (s SubStorage) translate(offset uint64, n int) (uint64, error) {
	if _, err := Position(offset, n); err != nil {
		return 0, err
	}
	if offset+uint64(n) > s.size || s.offset > math.MaxInt64 {
		return 0, ErrInvalidOffset
	}
	if _, err := Position(s.offset+offset, n); err != nil {
		return 0, err
	}
	return s.offset + offset, nil
}
