package analyzer

import (
	"github.com/coregx/fpdf/internal/model"
	"github.com/coregx/fpdf/internal/parser"
	"github.com/coregx/fpdf/internal/security"
)

// analyzeSecurity reports the document's encryption mode and effective
// permission set, derived from the trailer's /Encrypt dictionary if
// present. An unencrypted document reports full permissions, per spec.md
// §4.B.4.
func (a *Analyzer) analyzeSecurity(reader *parser.Reader) model.Security {
	trailer := reader.Trailer()
	if trailer == nil || !trailer.Has("Encrypt") {
		return model.Security{
			Mode:        "none",
			Permissions: int32(security.PermissionAll),
			CanPrint:    true,
			CanModify:   true,
			CanCopy:     true,
			CanAnnotate: true,
		}
	}

	encObj := trailer.Get("Encrypt")
	if ref, ok := encObj.(*parser.IndirectReference); ok {
		if resolved, err := reader.GetObject(ref.Number); err == nil {
			encObj = resolved
		}
	}
	encDict, ok := encObj.(*parser.Dictionary)
	if !ok {
		return model.Security{Mode: "unknown"}
	}

	mode := "RC4"
	if v := encDict.GetName("V"); v != nil {
		switch v.Value() {
		case "4", "5":
			mode = "AES"
		}
	}

	perms := security.Permission(int32(encDict.GetInteger("P")))
	return model.Security{
		Mode:        mode,
		Permissions: int32(perms),
		CanPrint:    perms.Has(security.PermissionPrint),
		CanModify:   perms.Has(security.PermissionModify),
		CanCopy:     perms.Has(security.PermissionCopy),
		CanAnnotate: perms.Has(security.PermissionAnnotate),
	}
}
