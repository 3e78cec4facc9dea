// Package validate checks tool arguments against struct tags before any
// network call and reports the first failure as a ValidationError.
package validate

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apierrors "github.com/olgasafonova/chemdata-mcp-server/internal/errors"
	"github.com/olgasafonova/chemdata-mcp-server/internal/identifiers"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// kindTags maps custom validation tags to identifier schemes.
var kindTags = map[string]identifiers.Kind{
	"pdbid":      identifiers.KindPDBID,
	"chemblid":   identifiers.KindChEMBLID,
	"drugbankid": identifiers.KindDrugBankID,
	"uniprot":    identifiers.KindUniProt,
	"inchikey":   identifiers.KindInChIKey,
	"ensembl":    identifiers.KindEnsemblGene,
}

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		for tag, kind := range kindTags {
			kind := kind
			_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return identifiers.Matches(fl.Field().String(), kind)
			})
		}
		instance = v
	})
	return instance
}

// Struct validates s and converts the first failure into a ValidationError.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return apierrors.NewValidationError("", "", err.Error())
	}
	fe := verrs[0]
	return apierrors.NewValidationError(fe.Field(), fmt.Sprint(fe.Value()), message(fe))
}

// Var validates a single value against tag.
func Var(field string, value any, tag string) error {
	err := get().Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		return apierrors.NewValidationError(field, fmt.Sprint(value), message(verrs[0]))
	}
	return apierrors.NewValidationError(field, fmt.Sprint(value), err.Error())
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "pdbid":
		return "must be a 4-character PDB ID (digit followed by 3 alphanumerics, e.g. 4HHB)"
	case "chemblid":
		return "must be a ChEMBL ID (e.g. CHEMBL25)"
	case "drugbankid":
		return "must be a DrugBank ID (DB followed by 5 digits, e.g. DB00945)"
	case "uniprot":
		return "must be a UniProt accession (e.g. P69905)"
	case "inchikey":
		return "must be a standard InChIKey (e.g. BSYNRYMUTXBXSQ-UHFFFAOYSA-N)"
	case "ensembl":
		return "must be an Ensembl gene ID (e.g. ENSG00000157764)"
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}
