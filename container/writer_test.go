package container

import (
	"bytes"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	log := zaptest.NewLogger(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, log)
	if err := w.Put(KeyFileHeader, []byte("header-bytes")); err != nil {
		t.Fatalf("Put header: %v", err)
	}
	if err := w.Put("images/0", []byte{1, 2, 3}); err != nil {
		t.Fatalf("Put image: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	got, err := r.Get(KeyFileHeader)
	if err != nil {
		t.Fatalf("Get header: %v", err)
	}
	if string(got) != "header-bytes" {
		t.Fatalf("header bytes: got %q", got)
	}

	if !r.Has("images/0") {
		t.Fatalf("expected images/0 to exist")
	}
	if r.Has("images/1") {
		t.Fatalf("did not expect images/1 to exist")
	}
}

func TestWriterRejectsDuplicateKey(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, zaptest.NewLogger(t))
	if err := w.Put("a", []byte("1")); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if err := w.Put("a", []byte("2")); err == nil {
		t.Fatalf("expected duplicate key error")
	}
}

func TestValueRoundTrip(t *testing.T) {
	type sample struct {
		Name string `ion:"name"`
		ID   int    `ion:"id"`
	}

	var buf bytes.Buffer
	w := NewWriter(&buf, zaptest.NewLogger(t))
	if err := w.PutValue("collections/0", sample{Name: "group", ID: 0}); err != nil {
		t.Fatalf("PutValue: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	var got sample
	if err := r.GetValue("collections/0", &got); err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if got.Name != "group" || got.ID != 0 {
		t.Fatalf("round-tripped value: %+v", got)
	}
}
