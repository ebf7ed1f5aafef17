package pdd

import (
	"crypto/md5" //nolint:gosec // the gateway mandates MD5 signatures
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Sign computes the gateway signature for params:
// upper(hex(md5(secret + k1 + v1 + ... + kn + vn + secret))) with keys in
// ascending byte order.
func Sign(secret string, params Query) (string, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(secret)
	for _, k := range keys {
		v, err := params[k].Canonical()
		if err != nil {
			return "", fmt.Errorf("sign: serialize %q: %w", k, err)
		}
		b.WriteString(k)
		b.WriteString(v)
	}
	b.WriteString(secret)

	sum := md5.Sum([]byte(b.String())) //nolint:gosec
	return strings.ToUpper(hex.EncodeToString(sum[:])), nil
}
