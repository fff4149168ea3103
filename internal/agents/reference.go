package agents

import (
	"github.com/bilal-bim/devbrain-ai/internal/models"
)

const defaultIndustry = "default"

// Hardcoded reference figures per industry bucket. These are canned values
// for the UI panels, not estimates.
var marketTable = map[string]models.MarketAnalysis{
	"freelance": {
		TAM:        "$1.2T",
		GrowthRate: "15%",
		Segments: []models.MarketSegment{
			{Name: "Creative Freelancers", Size: "$400M", Description: "Designers, writers and video editors billing per project; average income $65K"},
			{Name: "Tech Consultants", Size: "$350M", Description: "Developers and IT consultants on hourly contracts; average income $95K"},
			{Name: "Business Services", Size: "$250M", Description: "Virtual assistants, bookkeepers and marketers on retainers; average income $48K"},
		},
	},
	"ecommerce": {
		TAM:        "$6.3T",
		GrowthRate: "11%",
		Segments: []models.MarketSegment{
			{Name: "Independent Sellers", Size: "$900M", Description: "Solo founders running a single storefront"},
			{Name: "Small Retail Brands", Size: "$700M", Description: "Brands with 2-20 employees selling direct to consumer"},
			{Name: "Marketplace Merchants", Size: "$500M", Description: "Sellers spread across Amazon, Etsy and eBay"},
		},
	},
	"healthcare": {
		TAM:        "$660B",
		GrowthRate: "18%",
		Segments: []models.MarketSegment{
			{Name: "Independent Clinics", Size: "$300M", Description: "Private practices with fewer than 10 providers"},
			{Name: "Wellness Coaches", Size: "$200M", Description: "Fitness and nutrition professionals with recurring clients"},
			{Name: "Chronic Care Patients", Size: "$150M", Description: "Patients managing long-term conditions at home"},
		},
	},
	"education": {
		TAM:        "$404B",
		GrowthRate: "16%",
		Segments: []models.MarketSegment{
			{Name: "Online Course Creators", Size: "$250M", Description: "Instructors selling self-paced courses"},
			{Name: "Tutoring Services", Size: "$200M", Description: "Private tutors and small tutoring companies"},
			{Name: "Lifelong Learners", Size: "$180M", Description: "Adults upskilling outside formal education"},
		},
	},
	"fintech": {
		TAM:        "$340B",
		GrowthRate: "20%",
		Segments: []models.MarketSegment{
			{Name: "Underbanked Consumers", Size: "$450M", Description: "Consumers with limited access to traditional banking"},
			{Name: "Small Business Finance", Size: "$380M", Description: "Owners managing cash flow without a finance team"},
			{Name: "Retail Investors", Size: "$220M", Description: "First-time investors using mobile brokerages"},
		},
	},
	"saas": {
		TAM:        "$720B",
		GrowthRate: "13%",
		Segments: []models.MarketSegment{
			{Name: "SMB Teams", Size: "$600M", Description: "Teams of 5-50 replacing spreadsheets"},
			{Name: "Agencies", Size: "$300M", Description: "Service agencies coordinating client work"},
			{Name: "Mid-Market Operations", Size: "$250M", Description: "Operations teams in companies of 200-1000"},
		},
	},
	defaultIndustry: {
		TAM:        "$500B",
		GrowthRate: "12%",
		Segments: []models.MarketSegment{
			{Name: "Early Adopters", Size: "$200M", Description: "Tech-savvy users willing to try new tools"},
			{Name: "Small Businesses", Size: "$150M", Description: "Owners looking for affordable software"},
			{Name: "Enterprise Pilots", Size: "$100M", Description: "Innovation teams running pilot programs"},
		},
	},
}

var personaTable = map[string][]models.Persona{
	"freelance": {
		{
			Name:        "Creative Freelancer",
			Description: "Designer or writer juggling 4-8 clients at a time",
			Size:        "2.3M",
			Income:      "$65K",
			PainPoints: []models.PainPoint{
				{Description: "Chasing late payments", Severity: 73},
				{Description: "Tracking billable hours across projects", Severity: 58},
			},
			Goals: []string{"Get paid on time", "Spend less time on admin"},
		},
		{
			Name:        "Tech Consultant",
			Description: "Independent developer billing hourly on long contracts",
			Size:        "1.1M",
			Income:      "$95K",
			PainPoints: []models.PainPoint{
				{Description: "Creating professional invoices quickly", Severity: 61},
				{Description: "Handling taxes for multiple currencies", Severity: 47},
			},
			Goals: []string{"Look professional to enterprise clients", "Automate recurring billing"},
		},
	},
	"ecommerce": {
		{
			Name:        "Solo Store Owner",
			Description: "Runs a single online store as a side business",
			Size:        "3.5M",
			Income:      "$42K",
			PainPoints: []models.PainPoint{
				{Description: "Keeping inventory in sync across channels", Severity: 68},
				{Description: "Abandoned carts", Severity: 55},
			},
			Goals: []string{"Grow repeat customers", "Reduce manual order handling"},
		},
		{
			Name:        "Growing Brand Manager",
			Description: "Manages marketing for a small direct-to-consumer brand",
			Size:        "800K",
			Income:      "$72K",
			PainPoints: []models.PainPoint{
				{Description: "Rising customer acquisition costs", Severity: 71},
			},
			Goals: []string{"Understand which channels convert"},
		},
	},
	"healthcare": {
		{
			Name:        "Clinic Administrator",
			Description: "Runs scheduling and billing for a small practice",
			Size:        "450K",
			Income:      "$52K",
			PainPoints: []models.PainPoint{
				{Description: "No-show appointments", Severity: 66},
				{Description: "Insurance paperwork", Severity: 62},
			},
			Goals: []string{"Fill the calendar", "Cut paperwork time"},
		},
	},
	"education": {
		{
			Name:        "Independent Course Creator",
			Description: "Sells courses to a niche audience",
			Size:        "1.6M",
			Income:      "$38K",
			PainPoints: []models.PainPoint{
				{Description: "Low course completion rates", Severity: 64},
			},
			Goals: []string{"Keep students engaged", "Launch new courses faster"},
		},
	},
	defaultIndustry: {
		{
			Name:        "Early Adopter",
			Description: "Professional who tries new tools to save time",
			Size:        "1.5M",
			Income:      "$70K",
			PainPoints: []models.PainPoint{
				{Description: "Existing tools are too complex", Severity: 60},
				{Description: "Too much manual work", Severity: 52},
			},
			Goals: []string{"Save time every week"},
		},
		{
			Name:        "Small Business Owner",
			Description: "Owner-operator wearing many hats",
			Size:        "5.0M",
			Income:      "$58K",
			PainPoints: []models.PainPoint{
				{Description: "Limited budget for software", Severity: 57},
			},
			Goals: []string{"Grow without hiring"},
		},
	},
}

var competitorTable = map[string][]models.Competitor{
	"freelance": {
		{Name: "FreshBooks", MarketShare: 35, Strengths: []string{"Brand recognition", "Accounting depth"}, Weaknesses: []string{"Expensive for solo users"}, Pricing: "$17-55/month"},
		{Name: "Wave", MarketShare: 20, Strengths: []string{"Free invoicing"}, Weaknesses: []string{"Limited automation"}, Pricing: "Free + payment fees"},
		{Name: "Bonsai", MarketShare: 12, Strengths: []string{"Contracts and proposals"}, Weaknesses: []string{"Weak reporting"}, Pricing: "$21-66/month"},
	},
	"ecommerce": {
		{Name: "Shopify", MarketShare: 30, Strengths: []string{"App ecosystem"}, Weaknesses: []string{"Transaction fees"}, Pricing: "$39-399/month"},
		{Name: "WooCommerce", MarketShare: 22, Strengths: []string{"Open source"}, Weaknesses: []string{"Self-hosting burden"}, Pricing: "Free + hosting"},
		{Name: "BigCommerce", MarketShare: 8, Strengths: []string{"Built-in features"}, Weaknesses: []string{"Smaller community"}, Pricing: "$39-399/month"},
	},
	"healthcare": {
		{Name: "Epic", MarketShare: 31, Strengths: []string{"Hospital adoption"}, Weaknesses: []string{"Too heavy for small clinics"}, Pricing: "Enterprise"},
		{Name: "SimplePractice", MarketShare: 14, Strengths: []string{"Easy onboarding"}, Weaknesses: []string{"Limited integrations"}, Pricing: "$29-99/month"},
	},
	"education": {
		{Name: "Teachable", MarketShare: 25, Strengths: []string{"Creator tools"}, Weaknesses: []string{"Transaction fees on low tiers"}, Pricing: "$39-299/month"},
		{Name: "Thinkific", MarketShare: 21, Strengths: []string{"Free plan"}, Weaknesses: []string{"Dated UI"}, Pricing: "$0-199/month"},
	},
	defaultIndustry: {
		{Name: "Incumbent Suite", MarketShare: 40, Strengths: []string{"Feature breadth"}, Weaknesses: []string{"Complex onboarding"}, Pricing: "$50+/month"},
		{Name: "Spreadsheets", MarketShare: 25, Strengths: []string{"Familiar", "Free"}, Weaknesses: []string{"Manual and error-prone"}, Pricing: "Free"},
	},
}

var featureTable = map[string][]models.Feature{
	"freelance": {
		{Name: "Invoice Builder", Description: "Create branded invoices in under a minute", Priority: models.PriorityMustHave, Effort: "medium", Impact: "high"},
		{Name: "Payment Reminders", Description: "Automatic reminders for overdue invoices", Priority: models.PriorityMustHave, Effort: "low", Impact: "high"},
		{Name: "Online Payments", Description: "Card and bank payments straight from the invoice", Priority: models.PriorityMustHave, Effort: "medium", Impact: "high"},
		{Name: "Time Tracking", Description: "Log hours and turn them into invoice lines", Priority: models.PriorityNiceToHave, Effort: "medium", Impact: "medium"},
		{Name: "Expense Reports", Description: "Attach receipts and export for taxes", Priority: models.PriorityNiceToHave, Effort: "high", Impact: "medium"},
	},
	"ecommerce": {
		{Name: "Product Catalog", Description: "Manage products, variants and stock", Priority: models.PriorityMustHave, Effort: "medium", Impact: "high"},
		{Name: "Checkout", Description: "One-page checkout with saved carts", Priority: models.PriorityMustHave, Effort: "high", Impact: "high"},
		{Name: "Order Dashboard", Description: "Track and fulfil orders", Priority: models.PriorityMustHave, Effort: "medium", Impact: "high"},
		{Name: "Abandoned Cart Emails", Description: "Recover lost sales automatically", Priority: models.PriorityNiceToHave, Effort: "low", Impact: "medium"},
	},
	defaultIndustry: {
		{Name: "User Accounts", Description: "Sign up, log in and manage a profile", Priority: models.PriorityMustHave, Effort: "low", Impact: "high"},
		{Name: "Core Workflow", Description: "The main job the product does for its users", Priority: models.PriorityMustHave, Effort: "high", Impact: "high"},
		{Name: "Dashboard", Description: "Overview of activity and key numbers", Priority: models.PriorityMustHave, Effort: "medium", Impact: "medium"},
		{Name: "Notifications", Description: "Email alerts for important events", Priority: models.PriorityNiceToHave, Effort: "low", Impact: "medium"},
		{Name: "Team Sharing", Description: "Invite collaborators", Priority: models.PriorityNiceToHave, Effort: "medium", Impact: "medium"},
	},
}

// MarketFor returns the canned market analysis for an industry bucket
func MarketFor(industry string) models.MarketAnalysis {
	market := marketTable[IndustryOrDefault(industry)]
	market.Segments = append([]models.MarketSegment{}, market.Segments...)
	return market
}

// PersonasFor returns the canned personas for an industry bucket
func PersonasFor(industry string) []models.Persona {
	rows, ok := personaTable[industry]
	if !ok {
		rows = personaTable[defaultIndustry]
	}
	out := make([]models.Persona, len(rows))
	for i, p := range rows {
		p.PainPoints = append([]models.PainPoint{}, p.PainPoints...)
		p.Goals = append([]string{}, p.Goals...)
		out[i] = p
	}
	return out
}

// CompetitorsFor returns the canned competitor list for an industry bucket
func CompetitorsFor(industry string) []models.Competitor {
	rows, ok := competitorTable[industry]
	if !ok {
		rows = competitorTable[defaultIndustry]
	}
	out := make([]models.Competitor, len(rows))
	for i, c := range rows {
		c.Strengths = append([]string{}, c.Strengths...)
		c.Weaknesses = append([]string{}, c.Weaknesses...)
		out[i] = c
	}
	return out
}

// FeaturesFor returns the canned prioritized features for an industry bucket
func FeaturesFor(industry string) []models.Feature {
	rows, ok := featureTable[industry]
	if !ok {
		rows = featureTable[defaultIndustry]
	}
	return append([]models.Feature{}, rows...)
}
