package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lafayette53/apiserver/types"
)

// Required keys are pointer fields tagged `validate:"required"`: a missing
// key leaves the pointer nil, while an empty string or false is accepted.

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeRequest parses the JSON body into dst and checks that every
// required key is present.
func decodeRequest(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, fieldPath(fe.Namespace()))
			}
			return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
		}
		return err
	}
	return nil
}

// fieldPath turns a validator namespace into the JSON key path, dropping the
// request type name and embedded struct names.
func fieldPath(namespace string) string {
	namespace = strings.ReplaceAll(namespace, "EntityFields.", "")
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// Credentials identifies the caller. Protected routes carry it either at the
// top level or nested under "user".
type Credentials struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// EntityFields are the descriptive fields shared by museums, collections,
// and artifacts.
type EntityFields struct {
	Name         *string `json:"name" validate:"required"`
	Description  *string `json:"description" validate:"required"`
	Introduction *string `json:"introduction" validate:"required"`
	Image        *string `json:"image" validate:"required"`
}

// IdentifiedEntity is an existing entity being edited.
type IdentifiedEntity struct {
	ID *int32 `json:"id" validate:"required"`
	EntityFields
}

// MuseumRef names the museum a request targets.
type MuseumRef struct {
	ID *int32 `json:"id" validate:"required"`
}

type LoginRequest = Credentials

type RegisterRequest struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
	Email    *string `json:"email" validate:"required"`
}

type ResetPasswordRequest struct {
	Username *string `json:"username" validate:"required"`
}

type AddMuseumRequest struct {
	Museum *EntityFields `json:"museum" validate:"required"`
	User   *Credentials  `json:"user" validate:"required"`
}

type AddCollectionRequest struct {
	Collection *EntityFields `json:"collection" validate:"required"`
	Museum     *MuseumRef    `json:"museum" validate:"required"`
	User       *Credentials  `json:"user" validate:"required"`
}

type EditCollectionRequest struct {
	Collection *IdentifiedEntity `json:"collection" validate:"required"`
	Museum     *MuseumRef        `json:"museum" validate:"required"`
	User       *Credentials      `json:"user" validate:"required"`
}

type AddArtifactRequest struct {
	Artifact   *EntityFields `json:"artifact" validate:"required"`
	Museum     *MuseumRef    `json:"museum" validate:"required"`
	Collection []int32       `json:"collection" validate:"required"`
	User       *Credentials  `json:"user" validate:"required"`
}

type EditArtifactRequest struct {
	Artifact   *IdentifiedEntity `json:"artifact" validate:"required"`
	Museum     *MuseumRef        `json:"museum" validate:"required"`
	Collection []int32           `json:"collection" validate:"required"`
	User       *Credentials      `json:"user" validate:"required"`
}

type ReviewEditRequest struct {
	EditID   *int32       `json:"editId" validate:"required"`
	Category *string      `json:"category" validate:"required"`
	Action   *bool        `json:"action" validate:"required"`
	User     *Credentials `json:"user" validate:"required"`
}

func (f EntityFields) museum() types.Museum {
	return types.Museum{
		Name:         *f.Name,
		Description:  *f.Description,
		Introduction: *f.Introduction,
		Image:        *f.Image,
	}
}

func (f EntityFields) collection() types.Collection {
	return types.Collection{
		Name:         *f.Name,
		Description:  *f.Description,
		Introduction: *f.Introduction,
		Image:        *f.Image,
	}
}

func (f EntityFields) artifact() types.Artifact {
	return types.Artifact{
		Name:         *f.Name,
		Description:  *f.Description,
		Introduction: *f.Introduction,
		Image:        *f.Image,
	}
}

func (e IdentifiedEntity) collection() types.Collection {
	c := e.EntityFields.collection()
	c.ID = int(*e.ID)
	return c
}

func (e IdentifiedEntity) artifact() types.Artifact {
	a := e.EntityFields.artifact()
	a.ID = int(*e.ID)
	return a
}

func ids(values []int32) []int {
	out := make([]int, 0, len(values))
	for _, v := range values {
		out = append(out, int(v))
	}
	return out
}
