package respack

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"

	"github.com/luckystreak96/pizzatopia-mirror/internal/manifest"
)

// Bucket names inside the resource file. The engine-side loader looks
// spritesheets and animations up by these exact names.
const (
	BucketSpritesheets = "spritesheets"
	BucketAnimations   = "animations"
	BucketTags         = "tags"
)

// AnimationRecord is the metadata stored next to a packed spritesheet.
type AnimationRecord struct {
	Sheet      string `yaml:"sheet"`
	SpriteSize int    `yaml:"spriteSize"`
	Frames     int    `yaml:"frames"`
	Columns    int    `yaml:"columns"`
	Tag        string `yaml:"tag,omitempty"`
}

// Pack assembles generated sheets and their metadata into a single
// resource file. Sheets are looked up in sheetsDir as <name>.png; a
// missing sheet aborts the pack.
func Pack(path, sheetsDir string, m manifest.Manifest) error {
	db, err := bolt.Open(path, 0666, nil)
	if err != nil {
		return fmt.Errorf("open resource file: %w", err)
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		sheets, err := tx.CreateBucketIfNotExists([]byte(BucketSpritesheets))
		if err != nil {
			return err
		}
		anims, err := tx.CreateBucketIfNotExists([]byte(BucketAnimations))
		if err != nil {
			return err
		}

		for _, anim := range m.Animations {
			if anim.Length() == 0 {
				continue
			}

			sheetPath := filepath.Join(sheetsDir, anim.Name+".png")
			data, err := os.ReadFile(sheetPath)
			if err != nil {
				return fmt.Errorf("spritesheet %q: %w", anim.Name, err)
			}

			size, err := spriteSize(sheetPath, anim)
			if err != nil {
				return err
			}

			record, err := yaml.Marshal(AnimationRecord{
				Sheet:      anim.Name,
				SpriteSize: size,
				Frames:     anim.Length(),
				Columns:    anim.Columns,
				Tag:        anim.Tag,
			})
			if err != nil {
				return err
			}

			if err := sheets.Put([]byte(anim.Name), data); err != nil {
				return err
			}
			if err := anims.Put([]byte(anim.Name), record); err != nil {
				return err
			}
		}

		tags, err := tx.CreateBucketIfNotExists([]byte(BucketTags))
		if err != nil {
			return err
		}
		for tag, names := range m.Tags() {
			data, err := yaml.Marshal(names)
			if err != nil {
				return err
			}
			if err := tags.Put([]byte(tag), data); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("pack %s: %w", path, err)
	}
	return nil
}

// spriteSize recovers the cell size from the sheet's pixel dimensions and
// the animation's grid shape.
func spriteSize(sheetPath string, anim manifest.Animation) (int, error) {
	f, err := os.Open(sheetPath)
	if err != nil {
		return 0, fmt.Errorf("spritesheet %q: %w", anim.Name, err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return 0, fmt.Errorf("spritesheet %q: %w", anim.Name, err)
	}

	cols := anim.Length()
	if anim.Columns > 0 && anim.Columns < cols {
		cols = anim.Columns
	}
	if cfg.Width%cols != 0 {
		return 0, fmt.Errorf("spritesheet %q: width %d not divisible by %d columns",
			anim.Name, cfg.Width, cols)
	}
	return cfg.Width / cols, nil
}

// Entry describes one record in a resource file.
type Entry struct {
	Bucket string
	Key    string
	Size   int
}

// List returns every entry in the resource file, grouped by bucket.
func List(path string) ([]Entry, error) {
	db, err := bolt.Open(path, 0666, &bolt.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("open resource file: %w", err)
	}
	defer db.Close()

	var entries []Entry
	err = db.View(func(tx *bolt.Tx) error {
		for _, name := range []string{BucketSpritesheets, BucketAnimations, BucketTags} {
			buck := tx.Bucket([]byte(name))
			if buck == nil {
				continue
			}
			err := buck.ForEach(func(k, v []byte) error {
				entries = append(entries, Entry{Bucket: name, Key: string(k), Size: len(v)})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Bucket != entries[j].Bucket {
			return entries[i].Bucket < entries[j].Bucket
		}
		return entries[i].Key < entries[j].Key
	})
	return entries, nil
}

// ReadAnimation decodes one animation record from the resource file.
func ReadAnimation(path, name string) (AnimationRecord, error) {
	db, err := bolt.Open(path, 0666, &bolt.Options{ReadOnly: true})
	if err != nil {
		return AnimationRecord{}, fmt.Errorf("open resource file: %w", err)
	}
	defer db.Close()

	var record AnimationRecord
	err = db.View(func(tx *bolt.Tx) error {
		buck := tx.Bucket([]byte(BucketAnimations))
		if buck == nil {
			return fmt.Errorf("the animations bucket not found")
		}
		data := buck.Get([]byte(name))
		if data == nil {
			return fmt.Errorf("animation %q not found", name)
		}
		return yaml.Unmarshal(data, &record)
	})
	if err != nil {
		return AnimationRecord{}, err
	}
	return record, nil
}
