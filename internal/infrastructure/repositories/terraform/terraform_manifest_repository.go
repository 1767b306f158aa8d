package terraform

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	logger "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"

	"github.com/rios0rios0/rangewriter/internal/domain/entities"
	"github.com/rios0rios0/rangewriter/internal/domain/repositories"
)

const (
	manifestName = "terraform"
	moduleBlock  = "module"
	versionAttr  = "version"
	sourceAttr   = "source"
)

// TerraformManifestRepository reads module versions from .tf files: the
// version attribute of registry modules and the ?ref= tag of Git sources.
// A dependency's group is the module source (without ref) and its artifact
// the block label.
type TerraformManifestRepository struct{}

// NewTerraformManifestRepository creates a new Terraform adapter.
func NewTerraformManifestRepository() repositories.ManifestRepository {
	return &TerraformManifestRepository{}
}

func (r *TerraformManifestRepository) Name() string { return manifestName }

// Supports returns true for files with the .tf extension.
func (r *TerraformManifestRepository) Supports(path string) bool {
	return filepath.Ext(path) == ".tf"
}

// Read returns every module block that declares a string version or a
// Git source pinned to a ref.
func (r *TerraformManifestRepository) Read(_ context.Context, path string) ([]entities.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to parse %s", path)
	}

	content, _, diags := file.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{{Type: moduleBlock, LabelNames: []string{"name"}}},
	})
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to read module blocks of %s", path)
	}

	var deps []entities.Dependency
	for _, block := range content.Blocks {
		attrs, _ := block.Body.JustAttributes()

		source, sourceLine, _ := stringAttr(attrs, sourceAttr)
		version, line, ok := stringAttr(attrs, versionAttr)
		if !ok {
			ref, hasRef := sourceRef(source)
			if !hasRef {
				continue
			}
			_, version = tagVersion(ref)
			source = withoutRef(source)
			line = sourceLine
		}

		deps = append(deps, entities.Dependency{
			Group:    source,
			Artifact: block.Labels[0],
			Version:  version,
			FilePath: path,
			Line:     line,
		})
	}
	logger.Debugf("[terraform] Found %d versioned modules in %s", len(deps), path)
	return deps, nil
}

func stringAttr(attrs hcl.Attributes, name string) (string, int, bool) {
	attr, ok := attrs[name]
	if !ok {
		return "", 0, false
	}
	value, diags := attr.Expr.Value(&hcl.EvalContext{})
	if diags.HasErrors() || value.IsNull() || value.Type() != cty.String {
		return "", 0, false
	}
	return value.AsString(), attr.Range.Start.Line, true
}

// Write sets the version attribute of each rewritten module. Maven interval
// constraints are translated to Terraform comparators first. Git sources
// take exact refs only, so intervals are skipped for them with a warning.
func (r *TerraformManifestRepository) Write(
	_ context.Context,
	path string,
	results []entities.RewriteResult,
) ([]entities.RewriteResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	file, diags := hclwrite.ParseConfig(data, path, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "failed to parse %s", path)
	}

	wanted := make(map[string]entities.RewriteResult, len(results))
	for _, result := range results {
		if result.Changed() {
			wanted[result.Dependency.Artifact] = result
		}
	}

	var applied []entities.RewriteResult
	for _, block := range file.Body().Blocks() {
		if block.Type() != moduleBlock || len(block.Labels()) == 0 {
			continue
		}
		name := block.Labels()[0]
		result, ok := wanted[name]
		if !ok {
			continue
		}
		if block.Body().GetAttribute(versionAttr) == nil {
			if setSourceRef(block.Body(), name, result.Constraint) {
				applied = append(applied, result)
			}
			continue
		}
		constraint := toTerraformConstraint(result.Constraint)
		block.Body().SetAttributeValue(versionAttr, cty.StringVal(constraint))
		logger.Debugf("[terraform] module %q -> %s", name, constraint)
		applied = append(applied, result)
	}

	if len(applied) == 0 {
		logger.Debugf("[terraform] Nothing to write in %s", path)
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}
	if err = os.WriteFile(path, file.Bytes(), info.Mode().Perm()); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", path)
	}

	logger.Infof("[terraform] Updated %d module version(s) in %s", len(applied), path)
	return applied, nil
}

// setSourceRef rewrites the ?ref= tag of a Git module source, keeping the
// tag's "v" prefix.
func setSourceRef(body *hclwrite.Body, name, constraint string) bool {
	if _, err := entities.ParseRange(constraint); err == nil {
		logger.Warnf("[terraform] module %q: a Git ref cannot express %q, keeping it", name, constraint)
		return false
	}

	attr := body.GetAttribute(sourceAttr)
	if attr == nil {
		return false
	}
	source, err := unquote(attr.Expr().BuildTokens(nil).Bytes())
	if err != nil {
		logger.Warnf("[terraform] module %q: source is not a string literal, skipping", name)
		return false
	}
	ref, ok := sourceRef(source)
	if !ok {
		return false
	}

	prefix, _ := tagVersion(ref)
	updated := withRef(source, prefix+constraint)
	body.SetAttributeValue(sourceAttr, cty.StringVal(updated))
	logger.Debugf("[terraform] module %q -> %s", name, updated)
	return true
}

func unquote(raw []byte) (string, error) {
	expr, diags := hclsyntax.ParseExpression(raw, "", hcl.InitialPos)
	if diags.HasErrors() {
		return "", diags
	}
	value, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if value.IsNull() || value.Type() != cty.String {
		return "", errors.New("not a string")
	}
	return value.AsString(), nil
}

// toTerraformConstraint keeps exact versions and literals as they are and
// rewrites interval notation into comparator syntax.
func toTerraformConstraint(constraint string) string {
	versionRange, err := entities.ParseRange(constraint)
	if err != nil {
		return constraint
	}
	return versionRange.ComparatorString()
}
