package preview

import "fmt"

// Thumbnail jobs run under sh with "$1" the source file and "$t" the
// temporary output, renamed into place by wrapThumbnail.

func thumbDocumentJPG(int) string {
	return `convert -density 120 "$1[0]" -quality 80 "$t"`
}

func thumbVideoJPG(int) string {
	return `ffmpegthumbnailer -i "$1" -s 0 -q 2 -o "$t"`
}

func thumbImageSixel(width int) string {
	return fmt.Sprintf(`img2sixel "$1" -q low -w %d -o "$t"`, width)
}

func thumbDocumentSixel(width int) string {
	return fmt.Sprintf(`convert -density 120 "$1[0]" -quality 80 "$t.jpg" && img2sixel "$t.jpg" -q low -w %d -o "$t"; rc=$?; rm -f "$t.jpg"; exit $rc`, width)
}

func thumbVideoSixel(width int) string {
	return fmt.Sprintf(`ffmpegthumbnailer -i "$1" -s 0 -q 2 -o "$t.jpg" && img2sixel "$t.jpg" -q low -w %d -o "$t"; rc=$?; rm -f "$t.jpg"; exit $rc`, width)
}
