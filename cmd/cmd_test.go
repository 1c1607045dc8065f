package cmd

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"chat", 10, "chat"},
		{"bibliothèque", 12, "bibliothèque"},
		{"bibliothèque", 8, "bibli..."},
		{"l'hôpital", 6, "l'h..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"study", "queue", "stats", "history", "words", "preview", "remind", "reset", "restore", "version"}
	for _, name := range want {
		c, _, err := rootCmd.Find([]string{name})
		if err != nil || c == rootCmd {
			t.Errorf("command %q not registered", name)
		}
	}
}
