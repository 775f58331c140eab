package container

import "github.com/amazon-ion/ion-go/ion"

// MarshalValue Ion-encodes v the same way PutValue does, without staging it
// into a Writer. RepackWithReplacements callers use this to produce the
// replacement bytes for an entry that already exists in an artifact.
func MarshalValue(v any) ([]byte, error) {
	return ion.MarshalBinary(v)
}

// PutValue Ion-encodes v (a typed entity such as a collection or the file
// header) and stages it under key.
func (w *Writer) PutValue(key string, v any) error {
	data, err := MarshalValue(v)
	if err != nil {
		return err
	}
	return w.Put(key, data)
}

// GetValue reads the entry at key and Ion-decodes it into v.
func (r *Reader) GetValue(key string, v any) error {
	data, err := r.Get(key)
	if err != nil {
		return err
	}
	return ion.Unmarshal(data, v)
}
