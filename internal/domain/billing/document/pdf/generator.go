package pdf

import "github.com/sam1-khan/Simple-Invoice-Generator/internal/domain/billing/document"

// Extension of the files this package produces.
const Extension = "pdf"

type Generator interface {
	Generate(d document.Document) ([]byte, error)
}
