package respack

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/luckystreak96/pizzatopia-mirror/internal/manifest"
)

func writeSheet(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{9, 9, 9, 255}), image.Point{}, draw.Src)

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func testManifest() manifest.Manifest {
	return manifest.Manifest{
		Scene: "./guy.blend",
		Image: "guy",
		Animations: []manifest.Animation{
			{Name: "walk", Tag: "movement", StartFrame: 1, EndFrame: 20},
			{Name: "jump", Tag: "movement", StartFrame: 30, EndFrame: 34},
			{Name: "still", StartFrame: 5, EndFrame: 5},
		},
	}
}

func TestPackAndList(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, filepath.Join(dir, "walk.png"), 19*8, 8)
	writeSheet(t, filepath.Join(dir, "jump.png"), 4*8, 8)

	resPath := filepath.Join(dir, "stage.res")
	if err := Pack(resPath, dir, testManifest()); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	entries, err := List(resPath)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	got := map[string]int{}
	for _, e := range entries {
		got[e.Bucket]++
	}
	// still is zero-length and never packed; one movement tag.
	if got[BucketSpritesheets] != 2 {
		t.Errorf("spritesheets entries = %d, want 2", got[BucketSpritesheets])
	}
	if got[BucketAnimations] != 2 {
		t.Errorf("animations entries = %d, want 2", got[BucketAnimations])
	}
	if got[BucketTags] != 1 {
		t.Errorf("tags entries = %d, want 1", got[BucketTags])
	}
}

func TestPack_AnimationRecord(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, filepath.Join(dir, "walk.png"), 19*8, 8)
	writeSheet(t, filepath.Join(dir, "jump.png"), 4*8, 8)

	resPath := filepath.Join(dir, "stage.res")
	if err := Pack(resPath, dir, testManifest()); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	record, err := ReadAnimation(resPath, "walk")
	if err != nil {
		t.Fatalf("ReadAnimation: %v", err)
	}
	want := AnimationRecord{Sheet: "walk", SpriteSize: 8, Frames: 19, Tag: "movement"}
	if record != want {
		t.Errorf("record = %+v, want %+v", record, want)
	}
}

func TestPack_GridSheetSpriteSize(t *testing.T) {
	dir := t.TempDir()
	// 10 frames wrapped to 4 columns: 4*16 wide regardless of row count.
	writeSheet(t, filepath.Join(dir, "burn.png"), 64, 48)

	m := manifest.Manifest{
		Scene: "s.blend",
		Image: "fx",
		Animations: []manifest.Animation{
			{Name: "burn", StartFrame: 0, EndFrame: 10, Columns: 4},
		},
	}

	resPath := filepath.Join(dir, "stage.res")
	if err := Pack(resPath, dir, m); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	record, err := ReadAnimation(resPath, "burn")
	if err != nil {
		t.Fatalf("ReadAnimation: %v", err)
	}
	if record.SpriteSize != 16 {
		t.Errorf("SpriteSize = %d, want 16", record.SpriteSize)
	}
	if record.Columns != 4 {
		t.Errorf("Columns = %d, want 4", record.Columns)
	}
}

func TestPack_MissingSheet(t *testing.T) {
	dir := t.TempDir()
	// walk.png deliberately absent.
	resPath := filepath.Join(dir, "stage.res")

	err := Pack(resPath, dir, testManifest())
	if err == nil {
		t.Fatal("missing sheet should abort the pack")
	}
}

func TestReadAnimation_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, filepath.Join(dir, "walk.png"), 19*8, 8)
	writeSheet(t, filepath.Join(dir, "jump.png"), 4*8, 8)

	resPath := filepath.Join(dir, "stage.res")
	if err := Pack(resPath, dir, testManifest()); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	if _, err := ReadAnimation(resPath, "swim"); err == nil {
		t.Fatal("unknown animation should be an error")
	}
}

func TestList_MissingFile(t *testing.T) {
	if _, err := List(filepath.Join(t.TempDir(), "nope.res")); err == nil {
		t.Fatal("missing resource file should be an error")
	}
}
