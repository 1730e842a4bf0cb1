package module

import (
	"fmt"
	"path/filepath"

	"github.com/devsapp/sd-checkpoint-test/pkg/imaging"
	"github.com/devsapp/sd-checkpoint-test/pkg/models"
	"github.com/devsapp/sd-checkpoint-test/pkg/utils"
	"github.com/sirupsen/logrus"
)

// StoreImages save every image of result as <dir>/<prefix>-<n>.<ext>, stops at the first failure.
func StoreImages(result *models.Txt2ImgResult, dir, prefix, ext string) ([]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}
	saved := make([]string, 0, len(result.Images))
	decoder := imaging.NewDecoder(result.Images)
	for decoder.Next() {
		fname := filepath.Join(dir, fmt.Sprintf("%s-%d.%s", prefix, decoder.Count()-1, ext))
		if err := imaging.Save(fname, decoder.Image()); err != nil {
			return saved, err
		}
		logrus.Infof("file '%s' saved", fname)
		saved = append(saved, fname)
	}
	return saved, decoder.Err()
}
