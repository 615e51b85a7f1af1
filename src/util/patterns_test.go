package util

import "testing"

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"**/test/**", "src/test/java/FooTest.java", true},
		{"**/test/**", "test/FooTest.java", true},
		{"**/test/**", "src/main/java/Foo.java", false},
		{"**/test/**", "src/latest/Foo.java", false},
		{"**/generated/**", "build/generated/sources/Api.java", true},
		{"**/target/**", "service/target/classes/App.java", true},
		{"*.java", "Foo.java", true},
		{"*.java", "src/Foo.java", false},
		{"vendor/**", "vendor/lib/Dep.java", true},
		{"vendor/**", "src/vendor.java", false},
	}

	for _, tt := range tests {
		if got := MatchGlob(tt.pattern, tt.path); got != tt.want {
			t.Errorf("MatchGlob(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestExclusionMatcher(t *testing.T) {
	m := NewExclusionMatcher([]string{"**/test/**", "**/generated/**"})

	if !m.Matches("app/src/test/java/OrderTest.java") {
		t.Error("expected test path to be excluded")
	}
	if m.Matches("app/src/main/java/Order.java") {
		t.Error("expected main path to be included")
	}
}
