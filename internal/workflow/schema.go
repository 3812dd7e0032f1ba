package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/submit"
)

// Backend endpoints.
const (
	EndpointUserRecipes = "/user-recipes"
	EndpointRecipeIDs   = "/add-recipe-id.json"
	EndpointVerify      = "/verify_recipe"
	EndpointInventory   = "/inventory"
)

// VerifyRejectedText is alerted when the pantry check fails.
const VerifyRejectedText = "Sorry, you don't have all the ingredients to make this recipe."

// Compile-time interface checks.
var (
	_ submit.Schema = singleAdd{}
	_ submit.Schema = batchAdd{}
	_ submit.Schema = verifySchema{}
	_ submit.Schema = inventorySchema{}
	_ submit.Schema = redirectOnSave{}
)

// Form bodies. Array fields use the bracket spelling, e.g. recipe_ids[]=1.
type (
	singleForm struct {
		RecipeID string `url:"recipe_id"`
	}
	recipeBatchForm struct {
		RecipeIDs []string `url:"recipe_ids,brackets"`
	}
	ingredientBatchForm struct {
		RecipeIDs []string `url:"recipe-ids,brackets"`
	}
	verifyForm struct {
		Data string `url:"data"`
	}
	inventoryForm struct {
		Data   string `url:"data"`
		ListID string `url:"listId"`
	}
)

func ids(snap domain.Snapshot) []string {
	out := make([]string, len(snap.IDs))
	for i, id := range snap.IDs {
		out[i] = string(id)
	}
	return out
}

func single(snap domain.Snapshot) (string, error) {
	if len(snap.IDs) != 1 {
		return "", fmt.Errorf("single-item payload needs exactly one id, have %d", len(snap.IDs))
	}
	return string(snap.IDs[0]), nil
}

// savedReply is the echo of a single save. Ids arrive as strings or numbers.
type savedReply struct {
	RecipeID json.RawMessage `json:"recipe_id"`
}

func echoedID(body []byte) (domain.ItemID, bool) {
	var r savedReply
	if err := json.Unmarshal(body, &r); err != nil || len(r.RecipeID) == 0 {
		return "", false
	}
	raw := strings.Trim(string(bytes.TrimSpace(r.RecipeID)), `"`)
	id, err := domain.ParseItemID(raw)
	if err != nil || raw == "null" {
		return "", false
	}
	return id, true
}

// singleAdd posts recipe_id=<id> and expects the id echoed back.
type singleAdd struct {
	name     string
	endpoint string
}

func (s singleAdd) Name() string     { return s.name }
func (s singleAdd) Endpoint() string { return s.endpoint }

func (s singleAdd) Encode(snap domain.Snapshot) (url.Values, error) {
	id, err := single(snap)
	if err != nil {
		return nil, err
	}
	return query.Values(singleForm{RecipeID: id})
}

// Decode hides the echoed card, falling back to the submitted id when the
// reply carries none.
func (s singleAdd) Decode(snap domain.Snapshot, body []byte) domain.Outcome {
	if id, ok := echoedID(body); ok {
		return domain.Saved(id)
	}
	if len(snap.IDs) == 1 {
		return domain.Saved(snap.IDs[0])
	}
	return domain.SavedBatch()
}

// batchAdd posts every selected id under one array field. The reply is
// opaque.
type batchAdd struct {
	name     string
	endpoint string
	form     func([]string) any
}

func (s batchAdd) Name() string     { return s.name }
func (s batchAdd) Endpoint() string { return s.endpoint }

func (s batchAdd) Encode(snap domain.Snapshot) (url.Values, error) {
	return query.Values(s.form(ids(snap)))
}

func (s batchAdd) Decode(domain.Snapshot, []byte) domain.Outcome { return domain.SavedBatch() }

// verifySchema asks the server whether the pantry covers a recipe.
type verifySchema struct {
	target string
}

func (s verifySchema) Name() string     { return string(VariantVerifyRecipe) }
func (s verifySchema) Endpoint() string { return EndpointVerify }

func (s verifySchema) Encode(snap domain.Snapshot) (url.Values, error) {
	id, err := single(snap)
	if err != nil {
		return nil, err
	}
	return query.Values(verifyForm{Data: id})
}

// Decode rejects only on an explicit result:false.
func (s verifySchema) Decode(_ domain.Snapshot, body []byte) domain.Outcome {
	var r struct {
		Result *bool `json:"result"`
	}
	if err := json.Unmarshal(body, &r); err == nil && r.Result != nil && !*r.Result {
		return domain.Rejected(VerifyRejectedText)
	}
	return domain.Redirect(s.target)
}

// InventoryEntry is one ingredient of the reconciled inventory.
type InventoryEntry struct {
	Name string `json:"ingredientName"`
	Qty  string `json:"ingredientQty"`
	Unit string `json:"ingredientUnit"`
}

// EncodeInventory renders the snapshot as the JSON mapping id -> entry.
func EncodeInventory(snap domain.Snapshot) (string, error) {
	inv := make(map[string]InventoryEntry, len(snap.IDs))
	for _, id := range snap.IDs {
		f := snap.Fields[id]
		inv[string(id)] = InventoryEntry{
			Name: snap.Meta[id].Name,
			Qty:  f.Quantity.Value,
			Unit: f.Unit.Value,
		}
	}
	data, err := json.Marshal(inv)
	if err != nil {
		return "", fmt.Errorf("marshal inventory: %w", err)
	}
	return string(data), nil
}

// DecodeInventory parses a mapping produced by EncodeInventory.
func DecodeInventory(data string) (map[domain.ItemID]InventoryEntry, error) {
	var raw map[string]InventoryEntry
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal inventory: %w", err)
	}
	out := make(map[domain.ItemID]InventoryEntry, len(raw))
	for k, v := range raw {
		id, err := domain.ParseItemID(k)
		if err != nil {
			return nil, err
		}
		out[id] = v
	}
	return out, nil
}

// inventorySchema posts the reconciled inventory for one shopping list.
type inventorySchema struct {
	listID string
}

func (s inventorySchema) Name() string     { return string(VariantInventory) }
func (s inventorySchema) Endpoint() string { return EndpointInventory }

func (s inventorySchema) Encode(snap domain.Snapshot) (url.Values, error) {
	if s.listID == "" {
		return nil, fmt.Errorf("inventory needs a shopping list id")
	}
	data, err := EncodeInventory(snap)
	if err != nil {
		return nil, err
	}
	return query.Values(inventoryForm{Data: data, ListID: s.listID})
}

func (s inventorySchema) Decode(domain.Snapshot, []byte) domain.Outcome { return domain.SavedBatch() }

// redirectOnSave turns every save into a hard navigation to target.
type redirectOnSave struct {
	submit.Schema
	target string
}

func (s redirectOnSave) Decode(snap domain.Snapshot, body []byte) domain.Outcome {
	out := s.Schema.Decode(snap, body)
	if out.Kind == domain.OutcomeSaved {
		return domain.Redirect(s.target)
	}
	return out
}
