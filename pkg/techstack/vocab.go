package techstack

import "strings"

// Categories in stack order.
const (
	CategoryLanguages  = "languages"
	CategoryFrameworks = "frameworks"
	CategoryDatabases  = "databases"
	CategoryTools      = "tools"
)

var categories = []string{CategoryLanguages, CategoryFrameworks, CategoryDatabases, CategoryTools}

// known is the canonical technology vocabulary per category.
var known = map[string][]string{
	CategoryLanguages: {
		"Python", "JavaScript", "TypeScript", "Java", "C++", "C#", "Go", "Rust",
		"Kotlin", "Swift", "Ruby", "PHP", "R", "Scala", "MATLAB", "SQL", "Bash", "Shell",
	},
	CategoryFrameworks: {
		"Django", "Flask", "FastAPI", "Spring", "Spring Boot", "React", "Next.js",
		"Angular", "Vue", "Express", "Node.js", ".NET", "ASP.NET", "Laravel", "Rails",
		"Svelte", "Nuxt", "NestJS", "PyTorch", "TensorFlow", "Keras", "scikit-learn",
		"XGBoost", "LightGBM", "pandas", "NumPy",
	},
	CategoryDatabases: {
		"PostgreSQL", "MySQL", "SQLite", "MongoDB", "Redis", "Cassandra",
		"Elasticsearch", "Oracle", "SQL Server", "DynamoDB", "Snowflake", "BigQuery",
	},
	CategoryTools: {
		"Docker", "Kubernetes", "AWS", "GCP", "Azure", "Git", "GitHub", "GitLab",
		"Bitbucket", "Terraform", "Ansible", "Jenkins", "Airflow", "Kafka", "RabbitMQ",
		"Nginx", "Linux", "VSCode",
	},
}

// aliases rewrite common shorthands to their canonical names.
var aliases = map[string]string{
	"postgres":            "PostgreSQL",
	"postgresql":          "PostgreSQL",
	"postgre":             "PostgreSQL",
	"node":                "Node.js",
	"nodejs":              "Node.js",
	"reactjs":             "React",
	"nextjs":              "Next.js",
	"ms sql":              "SQL Server",
	"mssql":               "SQL Server",
	"google cloud":        "GCP",
	"gcloud":              "GCP",
	"amazon web services": "AWS",
	"azure devops":        "Azure",
	"k8s":                 "Kubernetes",
	"tf":                  "Terraform",
	"scikit learn":        "scikit-learn",
	"pytorch lightning":   "PyTorch",
	"ts":                  "TypeScript",
	"js":                  "JavaScript",
}

// nonTech drops chatter the fuzzy matcher would otherwise latch onto.
var nonTech = map[string]bool{
	"snake": true, "cat": true, "dog": true, "human": true, "food": true,
	"movie": true, "music": true, "song": true, "dance": true,
}

type entry struct {
	category  string
	canonical string
}

var (
	indexLower   = map[string]entry{}
	aliasesLower = map[string]entry{}
	// canonKeys preserves vocabulary order so fuzzy ties resolve the
	// same way on every run.
	canonKeys []string
)

func init() {
	for _, cat := range categories {
		for _, item := range known[cat] {
			low := strings.ToLower(item)
			indexLower[low] = entry{category: cat, canonical: item}
			canonKeys = append(canonKeys, low)
		}
	}
	for alias, canon := range aliases {
		if e, ok := indexLower[strings.ToLower(canon)]; ok {
			aliasesLower[strings.ToLower(alias)] = e
		}
	}
}

func isCategory(s string) bool {
	for _, cat := range categories {
		if s == cat {
			return true
		}
	}
	return false
}
