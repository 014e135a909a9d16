package domain

import "fmt"

// ProjectTemplate is the skeleton provisioned when a client buys a service package.
type ProjectTemplate struct {
	Type        ProjectType
	Name        string
	Description string
}

// ServicePackages maps the service keys offered on client intake to the single
// project type each one provisions.
var ServicePackages = map[string]ProjectType{
	"web":       ProjectWebsite,
	"ecommerce": ProjectEcommerce,
	"seo":       ProjectSEO,
	"ads":       ProjectMarketing,
	"marketing": ProjectMarketing,
	"support":   ProjectSupport,
	"branding":  ProjectBranding,
	"app":       ProjectApp,
}

var projectTemplates = map[ProjectType]ProjectTemplate{
	ProjectWebsite:   {Type: ProjectWebsite, Name: "Website", Description: "Sitemap, design, build and launch of the client website."},
	ProjectEcommerce: {Type: ProjectEcommerce, Name: "Online store", Description: "Catalogue, checkout and payment integration."},
	ProjectSEO:       {Type: ProjectSEO, Name: "SEO", Description: "Technical audit, keyword plan and monthly reporting."},
	ProjectMarketing: {Type: ProjectMarketing, Name: "Digital marketing", Description: "Paid campaigns setup, tracking and optimisation."},
	ProjectSupport:   {Type: ProjectSupport, Name: "Support & maintenance", Description: "Monitoring, updates and incident handling."},
	ProjectBranding:  {Type: ProjectBranding, Name: "Branding", Description: "Logo, visual identity and brand guidelines."},
	ProjectApp:       {Type: ProjectApp, Name: "App development", Description: "Scoping, design and delivery of the application."},
}

// TemplateFor returns the template for a project type, named after the client.
func TemplateFor(t ProjectType, clientName string) (ProjectTemplate, bool) {
	tpl, ok := projectTemplates[t]
	if !ok {
		return ProjectTemplate{}, false
	}
	tpl.Name = fmt.Sprintf("%s · %s", clientName, tpl.Name)
	return tpl, true
}

// ServiceTypes resolves service keys to distinct project types, keeping first-seen order.
func ServiceTypes(services []string) ([]ProjectType, error) {
	seen := make(map[ProjectType]bool, len(services))
	out := make([]ProjectType, 0, len(services))
	for _, s := range services {
		t, ok := ServicePackages[s]
		if !ok {
			return nil, fmt.Errorf("unknown service %q", s)
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}
