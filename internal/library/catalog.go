// Package library serves the static catalog of reusable MVP features.
package library

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bilal-bim/devbrain-ai/internal/models"
)

var (
	ErrUnknownFeature = errors.New("unknown library feature")
	ErrUnknownPack    = errors.New("unknown feature pack")
)

var features = []models.LibraryFeature{
	{ID: "auth-email", Name: "Email Authentication", Description: "Sign up, log in and password reset by email", Category: "auth", Effort: "low", Tags: []string{"auth", "core"}},
	{ID: "auth-oauth", Name: "Social Login", Description: "Google and GitHub OAuth sign-in", Category: "auth", Effort: "medium", Tags: []string{"auth"}},
	{ID: "payments-stripe", Name: "Stripe Payments", Description: "One-off and recurring payments through Stripe Checkout", Category: "payments", Effort: "medium", Tags: []string{"payments", "billing"}},
	{ID: "invoicing", Name: "Invoice Generator", Description: "Branded PDF invoices with payment links", Category: "payments", Effort: "medium", Tags: []string{"billing", "freelance"}},
	{ID: "notifications-email", Name: "Email Notifications", Description: "Transactional email with templates", Category: "messaging", Effort: "low", Tags: []string{"messaging", "core"}},
	{ID: "dashboard-analytics", Name: "Analytics Dashboard", Description: "Charts of the key metrics for each account", Category: "analytics", Effort: "medium", Tags: []string{"analytics", "dashboard"}},
	{ID: "scheduling", Name: "Booking Calendar", Description: "Availability slots and appointment booking", Category: "scheduling", Effort: "high", Tags: []string{"scheduling", "healthcare"}},
	{ID: "product-catalog", Name: "Product Catalog", Description: "Products, variants and inventory counts", Category: "commerce", Effort: "medium", Tags: []string{"ecommerce"}},
	{ID: "ai-assistant", Name: "AI Assistant", Description: "LLM chat grounded in the user's own data", Category: "ai", Effort: "high", Tags: []string{"ai"}},
	{ID: "team-workspaces", Name: "Team Workspaces", Description: "Invite members and manage roles", Category: "collaboration", Effort: "medium", Tags: []string{"saas", "collaboration"}},
}

var packs = []struct {
	id, name, description string
	featureIDs            []string
}{
	{"saas-starter", "SaaS Starter", "Everything a subscription product needs on day one", []string{"auth-email", "auth-oauth", "payments-stripe", "team-workspaces", "dashboard-analytics"}},
	{"freelance-toolkit", "Freelance Toolkit", "Get paid and stay organized as a freelancer", []string{"auth-email", "invoicing", "payments-stripe", "notifications-email"}},
	{"ecommerce-basics", "E-commerce Basics", "Sell products online", []string{"auth-email", "product-catalog", "payments-stripe", "notifications-email"}},
	{"booking-platform", "Booking Platform", "Let clients book time with you", []string{"auth-email", "scheduling", "notifications-email", "payments-stripe"}},
}

// Features returns the whole catalog, optionally filtered by category
func Features(category string) []models.LibraryFeature {
	out := []models.LibraryFeature{}
	for _, f := range features {
		if category == "" || strings.EqualFold(f.Category, category) {
			out = append(out, copyFeature(f))
		}
	}
	return out
}

// Feature looks up one catalog feature
func Feature(id string) (models.LibraryFeature, error) {
	for _, f := range features {
		if f.ID == id {
			return copyFeature(f), nil
		}
	}
	return models.LibraryFeature{}, fmt.Errorf("%w: %s", ErrUnknownFeature, id)
}

// Pack returns a feature pack with its features resolved
func Pack(id string) (models.FeaturePack, error) {
	for _, p := range packs {
		if p.id != id {
			continue
		}
		pack := models.FeaturePack{ID: p.id, Name: p.name, Description: p.description}
		for _, fid := range p.featureIDs {
			f, err := Feature(fid)
			if err != nil {
				return models.FeaturePack{}, err
			}
			pack.Features = append(pack.Features, f)
		}
		return pack, nil
	}
	return models.FeaturePack{}, fmt.Errorf("%w: %s", ErrUnknownPack, id)
}

// PackIDs lists the available packs
func PackIDs() []string {
	ids := make([]string, len(packs))
	for i, p := range packs {
		ids[i] = p.id
	}
	return ids
}

// ProjectStore loads and saves projects
type ProjectStore interface {
	Session(ctx context.Context, id string) (*models.Project, error)
	Save(ctx context.Context, project *models.Project) error
}

// AddToProject appends a catalog feature to the session's feature list as a
// nice-to-have. Adding the same feature twice is a no-op.
func AddToProject(ctx context.Context, store ProjectStore, sessionID, featureID string) (*models.Project, error) {
	lib, err := Feature(featureID)
	if err != nil {
		return nil, err
	}
	project, err := store.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for _, f := range project.Context.Features {
		if strings.EqualFold(f.Name, lib.Name) {
			return project, nil
		}
	}

	project.Context.Features = append(project.Context.Features, models.Feature{
		Name:        lib.Name,
		Description: lib.Description,
		Priority:    models.PriorityNiceToHave,
		Effort:      lib.Effort,
		Impact:      "medium",
	})
	if err := store.Save(ctx, project); err != nil {
		return nil, err
	}

	log.Printf("📚 Added library feature %s to session %s", lib.ID, sessionID)
	return project, nil
}

func copyFeature(f models.LibraryFeature) models.LibraryFeature {
	f.Tags = append([]string{}, f.Tags...)
	return f
}
