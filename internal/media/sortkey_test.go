package media_test

import (
	"testing"

	"plexify/internal/media"
)

func TestParseSortKey(t *testing.T) {
	cases := []struct {
		name string
		path string
		want *media.SortKey
	}{
		{
			name: "dashed stem",
			path: "shows/Foo Bar - S01E02.webm",
			want: &media.SortKey{Series: "Foo Bar", Season: 1, Episode: 2},
		},
		{
			name: "dotted stem",
			path: "Foo.Bar.S02E11.mkv",
			want: &media.SortKey{Series: "Foo Bar", Season: 2, Episode: 11},
		},
		{
			name: "separated marker",
			path: "Foo/S03 E04.mkv",
			want: &media.SortKey{Series: "Foo", Season: 3, Episode: 4},
		},
		{
			name: "series from directory above season dir",
			path: "Foo Bar/Season 1/S01E05.mkv",
			want: &media.SortKey{Series: "Foo Bar", Season: 1, Episode: 5},
		},
		{
			name: "no marker",
			path: "movies/Some Film (2021).mkv",
			want: nil,
		},
		{
			name: "season number without episode",
			path: "shows/Foo S01.mkv",
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := media.ParseSortKey(tc.path)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil sort key, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected sort key, got nil")
			}
			if *got != *tc.want {
				t.Fatalf("unexpected sort key: got %+v want %+v", got, tc.want)
			}
		})
	}
}
