package domain

import (
	"errors"
	"testing"
)

func TestParseExtension(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    Extension
		wantErr bool
	}{
		{
			name:  "well-formed token",
			token: "pub.pkg@1.2.3",
			want:  Extension{Publisher: "pub", Package: "pkg", Version: "1.2.3"},
		},
		{
			name:  "real-world token",
			token: "ms.python@2024.1.0",
			want:  Extension{Publisher: "ms", Package: "python", Version: "2024.1.0"},
		},
		{
			name:    "missing package",
			token:   "pub@1.2.3",
			wantErr: true,
		},
		{
			name:    "missing version separator",
			token:   "pub.pkg-1.2.3",
			wantErr: true,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExtension(tt.token)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseExtension(%q) succeeded, want error", tt.token)
				}
				if !errors.Is(err, ErrMalformedToken) {
					t.Errorf("error = %v, want ErrMalformedToken", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseExtension(%q) error = %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("ParseExtension(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
		})
	}
}

func TestExtension_String_RoundTrip(t *testing.T) {
	token := "golang.go@0.41.4"
	ext, err := ParseExtension(token)
	if err != nil {
		t.Fatalf("ParseExtension() error = %v", err)
	}
	if got := ext.String(); got != token {
		t.Errorf("String() = %q, want %q", got, token)
	}
}
