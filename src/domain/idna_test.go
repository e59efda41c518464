// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domain_test

import (
	"strings"
	"testing"

	"github.com/H0llyW00dzZ/domain-validator/src/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionsRequireUnicodeMode(t *testing.T) {
	v := domain.New(nil)

	_, err := v.ToPunycode("例子.测试")
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)

	_, err = v.ToUnicode("xn--fsqu00a.xn--0zwm56d")
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)
}

func TestToPunycode(t *testing.T) {
	v := domain.New(nil, domain.WithASCIIOnly(false))

	tests := []struct {
		input string
		want  string
	}{
		{"例子.测试", "xn--fsqu00a.xn--0zwm56d"},
		{"bücher.de", "xn--bcher-kva.de"},
		{"BÜCHER.DE.", "xn--bcher-kva.de"},
		{"www.bücher.de", "www.xn--bcher-kva.de"},
		{"\u0130stanbul.com", "xn--istanbul-o0e.com"},
		{"example.com", "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := v.ToPunycode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToPunycodeErrors(t *testing.T) {
	v := domain.New(nil, domain.WithASCIIOnly(false))

	_, err := v.ToPunycode("bad..例子")
	assert.ErrorIs(t, err, domain.ErrInvalidSyntax)

	_, err = v.ToPunycode("\u212Aelvin.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidSyntax)
	assert.Equal(t, domain.ReasonIDNA, reasonOf(t, err))

	_, err = v.ToPunycode(strings.Repeat("ü", 60) + ".de")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEncoding)
	assert.Equal(t, domain.ReasonLabelTooLong, reasonOf(t, err))
}

func TestToUnicode(t *testing.T) {
	v := domain.New(nil, domain.WithASCIIOnly(false))

	tests := []struct {
		input string
		want  string
	}{
		{"xn--fsqu00a.xn--0zwm56d", "例子.测试"},
		{"XN--BCHER-KVA.de", "bücher.de"},
		{"www.xn--bcher-kva.de", "www.bücher.de"},
		{"example.com", "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := v.ToUnicode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToUnicodeErrors(t *testing.T) {
	v := domain.New(nil, domain.WithASCIIOnly(false))

	_, err := v.ToUnicode("例子.测试")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEncoding)
	assert.Equal(t, domain.ReasonNotASCII, reasonOf(t, err))

	_, err = v.ToUnicode("xn--a.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEncoding)

	_, err = v.ToUnicode("nodots")
	assert.ErrorIs(t, err, domain.ErrInvalidSyntax)
}

func TestRoundTrip(t *testing.T) {
	v := domain.New(nil, domain.WithASCIIOnly(false))

	for _, name := range []string{"例子.测试", "bücher.de", "münchen.example.org", "пример.рф"} {
		ascii, err := v.ToPunycode(name)
		require.NoError(t, err, name)

		back, err := v.ToUnicode(ascii)
		require.NoError(t, err, name)
		assert.Equal(t, domain.Normalize(name), back)

		again, err := v.ToPunycode(back)
		require.NoError(t, err, name)
		assert.Equal(t, ascii, again)
	}
}
