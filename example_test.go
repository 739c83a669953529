package pagefile_test

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	pagefile "github.com/diskfs/go-pagefile"
	"github.com/diskfs/go-pagefile/backend"
	"github.com/diskfs/go-pagefile/backend/file"
)

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

// Create a store, write a page, and read it back.
func ExampleCreate() {
	dir, err := os.MkdirTemp("", "pagefile")
	check(err)
	defer os.RemoveAll(dir)

	store, err := pagefile.Create(filepath.Join(dir, "pages.db"), 4*4096)
	check(err)
	defer store.Close()

	check(store.Write(4096, []byte("hello page")))
	check(store.SyncData(true))
	page, err := store.Read(4096, 10)
	check(err)
	fmt.Println(string(page))
	// Output: hello page
}

// Build a backend over a handle the caller opened itself.
func ExampleOpen_handle() {
	dir, err := os.MkdirTemp("", "pagefile")
	check(err)
	defer os.RemoveAll(dir)

	f, err := os.OpenFile(filepath.Join(dir, "pages.db"), os.O_RDWR|os.O_CREATE, 0o600)
	check(err)
	defer f.Close()

	b, err := file.New(f)
	if errors.Is(err, backend.ErrDatabaseAlreadyOpen) {
		log.Fatal("store is in use by another process")
	}
	check(err)
	defer b.Close()

	check(b.SetLen(8192))
	size, err := b.Len()
	check(err)
	fmt.Println(size)
	// Output: 8192
}
