// Package infra loads and validates the static infrastructure declaration.
//
// The declaration is a CUE document describing exactly two resources: the
// compute instance the app is deployed to and the storage bucket that holds
// build artifacts. Applying the declaration is left to an external
// provisioning tool; this package only validates and decodes it.
package infra

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed decl.cue
var declSource []byte

// schemaSource is unified with the declaration before decoding. The close()
// wrapper rejects fields the schema does not name.
const schemaSource = `
instance: close({
	region:  string & !=""
	ami:     =~"^ami-[0-9a-f]+$"
	type:    string & !=""
	subnet:  =~"^subnet-[0-9a-f]+$"
	keyName: string & !=""
})
bucket: close({
	name: =~"^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$"
})
`

// Instance describes the single compute instance.
type Instance struct {
	Region  string `json:"region"`
	AMI     string `json:"ami"`
	Type    string `json:"type"`
	Subnet  string `json:"subnet"`
	KeyName string `json:"keyName"`
}

// Bucket describes the single storage bucket.
type Bucket struct {
	Name string `json:"name"`
}

// Declaration is the full decoded document.
type Declaration struct {
	Instance Instance `json:"instance"`
	Bucket   Bucket   `json:"bucket"`
}

// Load validates and decodes the embedded declaration.
func Load() (Declaration, error) {
	return parse(declSource, "decl.cue")
}

// LoadFile validates and decodes a declaration from path.
func LoadFile(path string) (Declaration, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Declaration{}, err
	}
	return parse(content, path)
}

func parse(src []byte, filename string) (Declaration, error) {
	cctx := cuecontext.New()

	schema := cctx.CompileString("close({" + schemaSource + "})")
	if err := schema.Err(); err != nil {
		return Declaration{}, fmt.Errorf("compile schema: %w", err)
	}

	value := cctx.CompileBytes(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return Declaration{}, fmt.Errorf("compile declaration: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Declaration{}, fmt.Errorf("validate declaration: %w", err)
	}

	var decl Declaration
	if err := unified.Decode(&decl); err != nil {
		return Declaration{}, fmt.Errorf("decode declaration: %w", err)
	}
	return decl, nil
}
