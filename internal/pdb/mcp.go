package pdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olgasafonova/chemdata-mcp-server/internal/backend"
	apierrors "github.com/olgasafonova/chemdata-mcp-server/internal/errors"
	"github.com/olgasafonova/chemdata-mcp-server/internal/normalize"
	"github.com/olgasafonova/chemdata-mcp-server/internal/query"
	"github.com/olgasafonova/chemdata-mcp-server/internal/validate"
	"github.com/olgasafonova/chemdata-mcp-server/metrics"
)

// Attributes used in search filters
const (
	AttrExperimentalMethod = "exptl.method"
	AttrResolution         = "rcsb_entry_info.resolution_combined"
	AttrUniProtAccession   = "rcsb_polymer_entity_container_identifiers.reference_sequence_identifiers.database_accession"
)

const (
	defaultLimit          = 25
	defaultSortBy         = "score"
	defaultIdentityCutoff = 0.9
	maxLigandFetches      = 4
)

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// SearchStructuresMCP runs a full-text search with optional method and
// resolution filters. A resolution range that does not parse is dropped.
func (c *Client) SearchStructuresMCP(ctx context.Context, args SearchStructuresArgs) (SearchResult, error) {
	if err := validate.Struct(args); err != nil {
		return SearchResult{}, err
	}

	var filters []query.Filter
	if args.ExperimentalMethod != "" {
		filters = append(filters, query.Exact(AttrExperimentalMethod, args.ExperimentalMethod))
	}
	if args.ResolutionRange != "" {
		if f, ok := query.ParseRange(AttrResolution, args.ResolutionRange); ok {
			filters = append(filters, f)
		} else {
			c.Logger.Warn("Dropping malformed resolution range",
				"attribute", AttrResolution,
				"value", args.ResolutionRange)
			metrics.RecordDroppedFilter(Service, AttrResolution)
		}
	}

	sortBy := args.SortBy
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	req := query.NewSearchRequest(query.Compose(query.FullText(args.Query), filters), limitOr(args.Limit)).SortedBy(sortBy)

	return c.search(ctx, args.Query, req, c.Timeout)
}

// SearchByUniProtMCP finds entries cross-referenced to a UniProt accession.
func (c *Client) SearchByUniProtMCP(ctx context.Context, args SearchByUniProtArgs) (SearchResult, error) {
	if err := validate.Struct(args); err != nil {
		return SearchResult{}, err
	}
	base := query.Exact(AttrUniProtAccession, strings.TrimSpace(args.UniProtID)).Terminal()
	req := query.NewSearchRequest(base, limitOr(args.Limit))
	return c.search(ctx, args.UniProtID, req, c.Timeout)
}

// SearchBySequenceMCP runs a sequence similarity search. The identity
// cutoff is forwarded without range checks.
func (c *Client) SearchBySequenceMCP(ctx context.Context, args SearchBySequenceArgs) (SearchResult, error) {
	if err := validate.Struct(args); err != nil {
		return SearchResult{}, err
	}
	seq := cleanSequence(args.Sequence)
	if seq == "" {
		return SearchResult{}, apierrors.NewValidationError("sequence", "", "contains no residues")
	}
	cutoff := defaultIdentityCutoff
	if args.IdentityCutoff != nil {
		cutoff = *args.IdentityCutoff
	}
	req := query.NewSearchRequest(query.Sequence(seq, cutoff), limitOr(args.Limit))
	return c.search(ctx, fmt.Sprintf("sequence(%d residues)", len(seq)), req, c.SequenceTimeout)
}

func (c *Client) search(ctx context.Context, label string, req query.SearchRequest, timeout time.Duration) (SearchResult, error) {
	out := backend.Search(ctx, c.guard, c, req, timeout)
	if err := out.Err(); err != nil {
		return SearchResult{}, err
	}
	structures := normalize.List(out.Payload, "result_set", SearchHitFields)
	return SearchResult{
		Query:      label,
		TotalCount: normalize.Int(out.Payload, "total_count", 0),
		Returned:   len(structures),
		Structures: structures,
	}, nil
}

// GetStructureInfoMCP returns the parsed entry for format json and the raw
// file text otherwise.
func (c *Client) GetStructureInfoMCP(ctx context.Context, args GetStructureInfoArgs) (GetStructureInfoResult, error) {
	if err := validate.Struct(args); err != nil {
		return GetStructureInfoResult{}, err
	}
	id := urlID(args.PDBID)
	format := args.Format
	if format == "" {
		format = "json"
	}

	if format == "json" {
		out := backend.Fetch(ctx, c.guard, c, id, c.Timeout)
		if err := out.Err(); err != nil {
			return GetStructureInfoResult{}, notFound(err, id)
		}
		entry := normalize.Normalize(out.Payload, EntryFields)
		return GetStructureInfoResult{PDBID: id, Format: format, Entry: &entry}, nil
	}

	filename := Filename(id, format, "")
	out := backend.Call(ctx, c.guard, Service, "file", c.Timeout, func(ctx context.Context) ([]byte, error) {
		return c.File(ctx, filename)
	})
	if err := out.Err(); err != nil {
		return GetStructureInfoResult{}, notFound(err, id)
	}
	metrics.RecordBinaryPayload(Service, format, len(out.Payload))
	return GetStructureInfoResult{PDBID: id, Format: format, Data: string(out.Payload)}, nil
}

// DownloadStructureMCP downloads a coordinate file, optionally for a
// biological assembly.
func (c *Client) DownloadStructureMCP(ctx context.Context, args DownloadStructureArgs) (DownloadStructureResult, error) {
	if err := validate.Struct(args); err != nil {
		return DownloadStructureResult{}, err
	}
	id := urlID(args.PDBID)
	format := args.Format
	if format == "" {
		format = "pdb"
	}
	filename := Filename(id, format, args.AssemblyID)

	out := backend.Call(ctx, c.guard, Service, "download", c.Timeout, func(ctx context.Context) ([]byte, error) {
		return c.File(ctx, filename)
	})
	if err := out.Err(); err != nil {
		return DownloadStructureResult{}, notFound(err, id)
	}
	metrics.RecordBinaryPayload(Service, format, len(out.Payload))

	return DownloadStructureResult{
		PDBID:      id,
		Format:     strings.ToUpper(format),
		AssemblyID: args.AssemblyID,
		Filename:   filename,
		Size:       len(out.Payload),
		Content:    string(out.Payload),
	}, nil
}

type qualityPayload struct {
	entry      []byte
	validation []byte
}

// GetQualityMCP fetches the entry and its validation summary concurrently.
// A missing validation summary is reported, not treated as a failure.
func (c *Client) GetQualityMCP(ctx context.Context, args GetQualityArgs) (GetQualityResult, error) {
	if err := validate.Struct(args); err != nil {
		return GetQualityResult{}, err
	}
	id := urlID(args.PDBID)

	out := backend.Call(ctx, c.guard, Service, "quality", c.Timeout, func(ctx context.Context) (qualityPayload, error) {
		var p qualityPayload
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			body, err := c.GetByID(gctx, id)
			p.entry = body
			return err
		})
		g.Go(func() error {
			body, err := c.ValidationSummary(gctx, id)
			if err != nil {
				c.Logger.Debug("Validation summary unavailable", "pdb_id", id, "error", err)
				return nil
			}
			p.validation = body
			return nil
		})
		err := g.Wait()
		return p, err
	})
	if err := out.Err(); err != nil {
		return GetQualityResult{}, notFound(err, id)
	}

	result := GetQualityResult{
		Quality:             normalize.Normalize(out.Payload.entry, QualityFields),
		ValidationAvailable: out.Payload.validation != nil,
	}
	if result.ValidationAvailable {
		var v any
		if err := json.Unmarshal(out.Payload.validation, &v); err == nil {
			result.ValidationData = v
		}
	}
	return result, nil
}

// GetLigandsMCP lists the non-polymer entities of an entry. The entity IDs
// come from the entry document; each entity is then fetched concurrently.
func (c *Client) GetLigandsMCP(ctx context.Context, args GetLigandsArgs) (GetLigandsResult, error) {
	if err := validate.Struct(args); err != nil {
		return GetLigandsResult{}, err
	}
	id := urlID(args.PDBID)

	out := backend.Call(ctx, c.guard, Service, "ligands", c.Timeout, func(ctx context.Context) ([][]byte, error) {
		entry, err := c.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		entityIDs := normalize.Strings(entry, "rcsb_entry_container_identifiers.non_polymer_entity_ids")
		docs := make([][]byte, len(entityIDs))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxLigandFetches)
		for i, entityID := range entityIDs {
			g.Go(func() error {
				body, err := c.NonpolymerEntity(gctx, id, entityID)
				docs[i] = body
				return err
			})
		}
		return docs, g.Wait()
	})
	if err := out.Err(); err != nil {
		return GetLigandsResult{}, notFound(err, id)
	}

	ligands := normalize.NormalizeList(out.Payload, LigandFields)
	return GetLigandsResult{PDBID: id, Count: len(ligands), Ligands: ligands}, nil
}

// Filename returns the download filename for an entry, format and optional
// assembly. mmcif files use the .cif extension.
func Filename(pdbID, format, assemblyID string) string {
	ext := format
	if format == "mmcif" {
		ext = "cif"
	}
	if assemblyID != "" {
		return fmt.Sprintf("%s-assembly%s.%s", pdbID, assemblyID, ext)
	}
	return pdbID + "." + ext
}

// cleanSequence strips FASTA header lines and whitespace.
func cleanSequence(s string) string {
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ">") {
			continue
		}
		b.WriteString(strings.Join(strings.Fields(line), ""))
	}
	return strings.ToUpper(b.String())
}

func limitOr(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}

// notFound rewrites a 404 from the data service as a NotFoundError.
func notFound(err error, id string) error {
	if apierrors.StatusCode(err) == 404 {
		return fmt.Errorf("%w: %w", apierrors.NewNotFoundError(Service, "structure", strings.ToUpper(id)), err)
	}
	return err
}
