package picture_rename

import (
	"gorm.io/gorm"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/services"
)

type Pipeline struct {
	db     *gorm.DB
	log    *logger.Logger
	rename services.RenameService
}

func New(db *gorm.DB, baseLog *logger.Logger, rename services.RenameService) *Pipeline {
	return &Pipeline{
		db:     db,
		log:    baseLog.With("job", "picture_rename"),
		rename: rename,
	}
}

func (p *Pipeline) Type() string { return "picture_rename" }
