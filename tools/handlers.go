package tools

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olgasafonova/chemdata-mcp-server/internal/chembl"
	"github.com/olgasafonova/chemdata-mcp-server/internal/drugbank"
	"github.com/olgasafonova/chemdata-mcp-server/internal/identifiers"
	"github.com/olgasafonova/chemdata-mcp-server/internal/normalize"
	"github.com/olgasafonova/chemdata-mcp-server/internal/opentargets"
	"github.com/olgasafonova/chemdata-mcp-server/internal/pdb"
	"github.com/olgasafonova/chemdata-mcp-server/internal/pubchem"
	"github.com/olgasafonova/chemdata-mcp-server/internal/surechembl"
	"github.com/olgasafonova/chemdata-mcp-server/internal/validate"
	"github.com/olgasafonova/chemdata-mcp-server/metrics"
	"github.com/olgasafonova/chemdata-mcp-server/tracing"
)

// Clients holds one client per backend. A nil client disables its tools.
type Clients struct {
	PDB         *pdb.Client
	PubChem     *pubchem.Client
	ChEMBL      *chembl.Client
	OpenTargets *opentargets.Client
	SureChEMBL  *surechembl.Client
	DrugBank    *drugbank.Client
}

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	clients Clients
	logger  *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(clients Clients, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		clients: clients,
		logger:  logger,
	}
}

// RegisterAll registers every tool whose backend client is configured and
// returns the names registered, in table order.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) []string {
	var names []string
	for _, spec := range AllTools {
		if !h.serviceAvailable(spec.Service) {
			continue
		}
		if h.registerByName(server, spec) {
			names = append(names, spec.Name)
		}
	}
	h.logger.Info("Registered tools", "count", len(names))
	return names
}

func (h *HandlerRegistry) serviceAvailable(service string) bool {
	c := h.clients
	switch service {
	case ServiceUtility:
		return true
	case pdb.Service:
		return c.PDB != nil
	case pubchem.Service:
		return c.PubChem != nil
	case chembl.Service:
		return c.ChEMBL != nil
	case opentargets.Service:
		return c.OpenTargets != nil
	case surechembl.Service:
		return c.SureChEMBL != nil
	case drugbank.Service:
		return c.DrugBank != nil
	}
	return false
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) bool {
	tool := h.buildTool(spec)
	c := h.clients

	switch spec.Method {
	// PDB tools
	case "PDBSearchStructures":
		register(h, server, tool, spec, c.PDB.SearchStructuresMCP)
	case "PDBGetStructureInfo":
		register(h, server, tool, spec, c.PDB.GetStructureInfoMCP)
	case "PDBDownloadStructure":
		register(h, server, tool, spec, c.PDB.DownloadStructureMCP)
	case "PDBSearchByUniProt":
		register(h, server, tool, spec, c.PDB.SearchByUniProtMCP)
	case "PDBGetQuality":
		register(h, server, tool, spec, c.PDB.GetQualityMCP)
	case "PDBGetLigands":
		register(h, server, tool, spec, c.PDB.GetLigandsMCP)
	case "PDBSearchBySequence":
		register(h, server, tool, spec, c.PDB.SearchBySequenceMCP)

	// PubChem tools
	case "PubChemSearchByName":
		register(h, server, tool, spec, c.PubChem.SearchByNameMCP)
	case "PubChemSearchBySMILES":
		register(h, server, tool, spec, c.PubChem.SearchBySMILESMCP)
	case "PubChemGetByCID":
		register(h, server, tool, spec, c.PubChem.GetByCIDMCP)
	case "PubChemAdvancedSearch":
		register(h, server, tool, spec, c.PubChem.AdvancedSearchMCP)

	// ChEMBL tools
	case "ChEMBLSearchByName":
		register(h, server, tool, spec, c.ChEMBL.SearchByNameMCP)
	case "ChEMBLSearchBySimilarity":
		register(h, server, tool, spec, c.ChEMBL.SearchBySimilarityMCP)
	case "ChEMBLSearchBySubstructure":
		register(h, server, tool, spec, c.ChEMBL.SearchBySubstructureMCP)
	case "ChEMBLSearchByInChIKey":
		register(h, server, tool, spec, c.ChEMBL.SearchByInChIKeyMCP)
	case "ChEMBLGetMolecule":
		register(h, server, tool, spec, c.ChEMBL.GetMoleculeMCP)
	case "ChEMBLSearchApprovedDrugs":
		register(h, server, tool, spec, c.ChEMBL.SearchApprovedDrugsMCP)
	case "ChEMBLSearchByProperties":
		register(h, server, tool, spec, c.ChEMBL.SearchByPropertiesMCP)
	case "ChEMBLSearchTargetByGene":
		register(h, server, tool, spec, c.ChEMBL.SearchTargetByGeneMCP)
	case "ChEMBLActivitiesByTarget":
		register(h, server, tool, spec, c.ChEMBL.SearchActivitiesByTargetMCP)
	case "ChEMBLActivitiesByMolecule":
		register(h, server, tool, spec, c.ChEMBL.SearchActivitiesByMoleculeMCP)
	case "ChEMBLSearchAssays":
		register(h, server, tool, spec, c.ChEMBL.SearchAssaysMCP)
	case "ChEMBLDocumentsByPubMed":
		register(h, server, tool, spec, c.ChEMBL.SearchDocumentsByPubMedMCP)
	case "ChEMBLQueryResource":
		register(h, server, tool, spec, c.ChEMBL.QueryResourceMCP)
	case "ChEMBLStatus":
		register(h, server, tool, spec, c.ChEMBL.GetStatusMCP)

	// Open Targets tools
	case "OTSearchTargets":
		register(h, server, tool, spec, c.OpenTargets.SearchTargetsMCP)
	case "OTSearchDiseases":
		register(h, server, tool, spec, c.OpenTargets.SearchDiseasesMCP)
	case "OTSearchDrugs":
		register(h, server, tool, spec, c.OpenTargets.SearchDrugsMCP)
	case "OTGetTargetDetails":
		register(h, server, tool, spec, c.OpenTargets.GetTargetDetailsMCP)
	case "OTTargetDiseases":
		register(h, server, tool, spec, c.OpenTargets.GetTargetAssociatedDiseasesMCP)
	case "OTDiseaseTargets":
		register(h, server, tool, spec, c.OpenTargets.GetDiseaseAssociatedTargetsMCP)

	// SureChEMBL tools
	case "SCSearchPatents":
		register(h, server, tool, spec, c.SureChEMBL.SearchPatentsMCP)
	case "SCGetDocumentContent":
		register(h, server, tool, spec, c.SureChEMBL.GetDocumentContentMCP)
	case "SCGetPatentFamily":
		register(h, server, tool, spec, c.SureChEMBL.GetPatentFamilyMCP)
	case "SCSearchByPatentNumber":
		register(h, server, tool, spec, c.SureChEMBL.SearchByPatentNumberMCP)
	case "SCSearchChemicalsByName":
		register(h, server, tool, spec, c.SureChEMBL.SearchChemicalsByNameMCP)
	case "SCGetChemicalByID":
		register(h, server, tool, spec, c.SureChEMBL.GetChemicalByIDMCP)
	case "SCGetChemicalProperties":
		register(h, server, tool, spec, c.SureChEMBL.GetChemicalPropertiesMCP)
	case "SCSearchBySMILES":
		register(h, server, tool, spec, c.SureChEMBL.SearchBySMILESMCP)
	case "SCSearchByInChI":
		register(h, server, tool, spec, c.SureChEMBL.SearchByInChIMCP)
	case "SCSearchSimilarStructures":
		register(h, server, tool, spec, c.SureChEMBL.SearchSimilarStructuresMCP)
	case "SCGetChemicalImage":
		register(h, server, tool, spec, c.SureChEMBL.GetChemicalImageMCP)
	case "SCExportChemicals":
		register(h, server, tool, spec, c.SureChEMBL.ExportChemicalsMCP)
	case "SCAnalyzePatentChemistry":
		register(h, server, tool, spec, c.SureChEMBL.AnalyzePatentChemistryMCP)
	case "SCGetChemicalFrequency":
		register(h, server, tool, spec, c.SureChEMBL.GetChemicalFrequencyMCP)
	case "SCGetPatentStatistics":
		register(h, server, tool, spec, c.SureChEMBL.GetPatentStatisticsMCP)

	// DrugBank tools
	case "DBSearchDrugs":
		register(h, server, tool, spec, c.DrugBank.SearchDrugsMCP)
	case "DBGetDrugDetails":
		register(h, server, tool, spec, c.DrugBank.GetDrugDetailsMCP)
	case "DBFindByIndication":
		register(h, server, tool, spec, c.DrugBank.FindByIndicationMCP)
	case "DBFindByCategory":
		register(h, server, tool, spec, c.DrugBank.FindByCategoryMCP)
	case "DBGetInteractions":
		register(h, server, tool, spec, c.DrugBank.GetInteractionsMCP)

	// Utility tools
	case "DetectIdentifier":
		register(h, server, tool, spec, DetectIdentifier)

	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
		return false
	}
	return true
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// recordSchema describes a normalized record. Its keys are fixed per field
// spec but the schema generator cannot see them.
var recordSchema = &jsonschema.Schema{Type: "object"}

// outputSchema infers the result schema, describing normalize.Record as an
// open object.
func outputSchema[Result any]() (*jsonschema.Schema, error) {
	return jsonschema.For[Result](&jsonschema.ForOptions{
		TypeSchemas: map[reflect.Type]*jsonschema.Schema{
			reflect.TypeFor[normalize.Record](): recordSchema,
		},
	})
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	if schema, err := outputSchema[Result](); err == nil {
		tool.OutputSchema = schema
	} else {
		h.logger.Warn("Falling back to inferred output schema", "tool", spec.Name, "error", err)
	}

	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (_ *mcp.CallToolResult, result Result, err error) {
		defer h.recoverPanic(spec.Name, &err)

		ctx, span := tracing.StartToolSpan(ctx, tracing.Tool{
			Name:     spec.Name,
			Service:  spec.Service,
			Category: spec.Category,
			ReadOnly: spec.ReadOnly,
		})
		defer span.End()
		if scheme, id := primaryIdentifier(args); id != "" {
			tracing.AddIdentifier(span, scheme, id)
		}

		// Track in-flight requests
		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err = method(ctx, args)
		duration := time.Since(start).Seconds()

		if err != nil {
			tracing.RecordError(span, err)
			metrics.RecordRequest(spec.Name, duration, false)
			h.logger.Warn("Tool failed", "tool", spec.Name, "service", spec.Service, "error", err)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers and reports them as
// tool errors.
func (h *HandlerRegistry) recoverPanic(toolName string, errp *error) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
		if errp != nil {
			*errp = fmt.Errorf("%s failed: internal error", toolName)
		}
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "service", spec.Service}

	// Add extractable fields from args using type assertions
	switch a := args.(type) {
	case pdb.SearchStructuresArgs:
		attrs = append(attrs, "query", a.Query)
	case pdb.GetStructureInfoArgs:
		attrs = append(attrs, "pdb_id", a.PDBID, "format", a.Format)
	case pdb.DownloadStructureArgs:
		attrs = append(attrs, "pdb_id", a.PDBID, "format", a.Format)
	case pubchem.SearchByNameArgs:
		attrs = append(attrs, "name", a.Name)
	case pubchem.GetByCIDArgs:
		attrs = append(attrs, "cid", a.CID)
	case chembl.SearchByNameArgs:
		attrs = append(attrs, "name", a.Name)
	case chembl.GetMoleculeArgs:
		attrs = append(attrs, "chembl_id", a.ChEMBLID)
	case opentargets.SearchArgs:
		attrs = append(attrs, "query", a.Query)
	case surechembl.SearchPatentsArgs:
		attrs = append(attrs, "query", a.Query)
	case surechembl.DocumentArgs:
		attrs = append(attrs, "document_id", a.DocumentID)
	case surechembl.ChemicalArgs:
		attrs = append(attrs, "chemical_id", a.ChemicalID)
	case drugbank.SearchDrugsArgs:
		attrs = append(attrs, "query", a.Query)
	case DetectIdentifierArgs:
		attrs = append(attrs, "identifier", a.Identifier)
	}

	// Add extractable fields from result
	switch r := result.(type) {
	case pdb.SearchResult:
		attrs = append(attrs, "results_count", r.Returned, "total_results", r.TotalCount)
	case pdb.DownloadStructureResult:
		attrs = append(attrs, "bytes", r.Size)
	case pdb.GetLigandsResult:
		attrs = append(attrs, "ligands", r.Count)
	case pubchem.SearchResult:
		attrs = append(attrs, "results_count", r.Count)
	case chembl.MoleculesResult:
		attrs = append(attrs, "results_count", r.Returned, "total_results", r.TotalCount)
	case chembl.ActivitiesResult:
		attrs = append(attrs, "results_count", r.Returned, "total_results", r.TotalCount)
	case opentargets.SearchResult:
		attrs = append(attrs, "results_count", r.Count, "total_results", r.Total)
	case opentargets.AssociationsResult:
		attrs = append(attrs, "associations", r.Count, "total_results", r.Total)
	case chembl.ResourceResult:
		attrs = append(attrs, "resource", r.Resource, "results_count", r.Returned, "total_results", r.TotalCount)
	case surechembl.SearchPatentsResult:
		attrs = append(attrs, "total_results", r.TotalHits)
	case surechembl.AnalysisResult:
		attrs = append(attrs, "annotations", r.TotalAnnotations, "unique_chemicals", len(r.UniqueChemicals))
	case surechembl.ChemicalImageResult:
		attrs = append(attrs, "bytes", r.Size)
	case drugbank.DrugsResult:
		attrs = append(attrs, "results_count", r.Count)
	case identifiers.Result:
		attrs = append(attrs, "kind", string(r.Kind))
	}

	h.logger.Info("Tool executed", attrs...)
}

// DetectIdentifierArgs contains the identifier to classify
type DetectIdentifierArgs struct {
	Identifier string `json:"identifier" jsonschema:"Identifier to classify, e.g. 4HHB, CHEMBL25 or DB00945" validate:"required"`
}

// DetectIdentifier classifies an identifier without any network call.
func DetectIdentifier(_ context.Context, args DetectIdentifierArgs) (identifiers.Result, error) {
	args.Identifier = strings.TrimSpace(args.Identifier)
	if err := validate.Struct(args); err != nil {
		return identifiers.Result{}, err
	}
	return identifiers.Describe(args.Identifier), nil
}

// primaryIdentifier returns the identifier scheme and value a tool call is
// about, or empty strings for searches.
func primaryIdentifier(args any) (scheme, id string) {
	switch a := args.(type) {
	case pdb.GetStructureInfoArgs:
		return string(identifiers.KindPDBID), a.PDBID
	case pdb.DownloadStructureArgs:
		return string(identifiers.KindPDBID), a.PDBID
	case pdb.GetQualityArgs:
		return string(identifiers.KindPDBID), a.PDBID
	case pdb.GetLigandsArgs:
		return string(identifiers.KindPDBID), a.PDBID
	case pdb.SearchByUniProtArgs:
		return string(identifiers.KindUniProt), a.UniProtID
	case pubchem.GetByCIDArgs:
		return string(identifiers.KindPubChemCID), strconv.Itoa(a.CID)
	case chembl.GetMoleculeArgs:
		return string(identifiers.KindChEMBLID), a.ChEMBLID
	case chembl.ActivitiesByTargetArgs:
		return string(identifiers.KindChEMBLID), a.TargetChEMBLID
	case chembl.ActivitiesByMoleculeArgs:
		return string(identifiers.KindChEMBLID), a.MoleculeChEMBLID
	case opentargets.TargetDetailsArgs:
		return string(identifiers.KindEnsemblGene), a.TargetID
	case opentargets.TargetDiseasesArgs:
		return string(identifiers.KindEnsemblGene), a.TargetID
	case opentargets.DiseaseTargetsArgs:
		return "disease", a.DiseaseID
	case surechembl.DocumentArgs:
		return "patent_document", a.DocumentID
	case surechembl.ChemicalArgs:
		return "surechembl_chemical", a.ChemicalID
	case surechembl.SimilarStructuresArgs:
		return "surechembl_chemical", a.ReferenceID
	case drugbank.DrugDetailsArgs:
		return string(identifiers.KindDrugBankID), a.DrugID
	case drugbank.InteractionsArgs:
		return string(identifiers.KindDrugBankID), a.DrugID
	case DetectIdentifierArgs:
		return "unknown", a.Identifier
	}
	return "", ""
}
