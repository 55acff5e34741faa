// Package codec holds the byte-level transforms shared by replay and save
// files: XOR obfuscation, zlib compression and protobuf wire helpers.
package codec

// Crypt XORs text with a repeating key. Zero bytes, and bytes that would
// become zero, are left unchanged, so applying Crypt twice with the same key
// restores the input. An empty key returns a copy of text.
func Crypt(text, key []byte) []byte {
	out := make([]byte, len(text))
	if len(key) == 0 {
		copy(out, text)
		return out
	}
	for i, t := range text {
		b := t ^ key[i%len(key)]
		if t == 0 || b == 0 {
			out[i] = t
		} else {
			out[i] = b
		}
	}
	return out
}
