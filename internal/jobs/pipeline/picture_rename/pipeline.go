package picture_rename

import (
	"fmt"

	"github.com/google/uuid"

	jobrt "github.com/casavera/catalog-media-backend/internal/jobs/runtime"
)

func (p *Pipeline) Run(jc *jobrt.Context) error {
	if jc == nil || jc.Job == nil {
		return nil
	}
	if p == nil || p.db == nil || p.log == nil || p.rename == nil {
		jc.Fail("validate", fmt.Errorf("picture_rename: pipeline not configured"))
		return nil
	}

	productID, ok := jc.PayloadUUID("product_id")
	if !ok || productID == uuid.Nil {
		jc.Fail("validate", fmt.Errorf("missing product_id"))
		return nil
	}

	jc.Progress("cascade", 5, "Renaming product pictures")

	summary, err := p.rename.RenameAllForProduct(jc.Ctx, productID)
	if err != nil {
		jc.Fail("cascade", err)
		return nil
	}

	stage := "done"
	if !summary.Clean() {
		stage = "done_with_failures"
	}
	jc.Succeed(stage, summary)
	return nil
}
