package attrcodec_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hupe1980/attrcodec"
	"github.com/hupe1980/attrcodec/fshandler"
	"github.com/hupe1980/attrcodec/segment"
)

// Example demonstrates writing a segment to local disk and reading it back.
func Example() {
	dir, err := os.MkdirTemp("", "segment")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	ctx := context.Background()
	h := fshandler.NewLocal(dir)
	codec := attrcodec.New()

	set := segment.NewAttributeSet(
		segment.NewAttribute("age", []byte{30, 41, 27}, segment.RowIDs{1, 2, 3}),
		segment.NewAttribute("score", []byte{9, 7, 8}, segment.RowIDs{1, 2, 3}),
	)
	if err := codec.WriteAll(ctx, h, set); err != nil {
		log.Fatal(err)
	}

	out, err := codec.ReadAll(ctx, h)
	if err != nil {
		log.Fatal(err)
	}
	for name, a := range out.All() {
		fmt.Println(name, a.Data, a.Nbytes)
	}
	// Output:
	// age [30 41 27] 3
	// score [9 7 8] 3
}

// Example_rowIDPersistence demonstrates the opt-in row-id file.
func Example_rowIDPersistence() {
	ctx := context.Background()
	mfs := fshandler.NewMemoryFS()
	mfs.Mkdir("/segment")
	h := mfs.Handler("/segment")

	codec := attrcodec.New(attrcodec.WithRowIDPersistence("rows"))

	set := segment.NewAttributeSet(segment.NewAttribute("age", []byte{30, 41}, segment.RowIDs{100, 200}))
	if err := codec.WriteAll(ctx, h, set); err != nil {
		log.Fatal(err)
	}

	ids, err := codec.ReadRowIDs(ctx, h)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(ids)
	// Output: [100 200]
}

// Example_readRange demonstrates reading part of a payload.
func Example_readRange() {
	ctx := context.Background()
	mfs := fshandler.NewMemoryFS()
	mfs.Mkdir("/segment")
	h := mfs.Handler("/segment")

	codec := attrcodec.New()
	set := segment.NewAttributeSet(segment.NewAttribute("age", []byte{1, 2, 3, 4}, nil))
	if err := codec.WriteAll(ctx, h, set); err != nil {
		log.Fatal(err)
	}

	data, total, err := codec.ReadRange(ctx, h, "age", 2, 10)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(data, total)
	// Output: [3 4] 4
}
