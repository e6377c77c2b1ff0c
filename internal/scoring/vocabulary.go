package scoring

// Skill is a vocabulary entry: a canonical display name plus the
// case-insensitive spellings that count as a mention.
type Skill struct {
	Name    string
	Aliases []string
}

// DefaultVocabulary covers common engineering skills. The engine treats the
// vocabulary as replaceable input, so domain-specific lists can be swapped
// in without touching the scoring logic.
func DefaultVocabulary() []Skill {
	return []Skill{
		{Name: "Python"},
		{Name: "Java"},
		{Name: "JavaScript", Aliases: []string{"js"}},
		{Name: "TypeScript", Aliases: []string{"ts"}},
		{Name: "Go", Aliases: []string{"golang"}},
		{Name: "Rust"},
		{Name: "C++"},
		{Name: "C#"},
		{Name: "Ruby"},
		{Name: "PHP"},
		{Name: "Swift"},
		{Name: "Kotlin"},
		{Name: "Scala"},
		{Name: "SQL"},
		{Name: "React", Aliases: []string{"react.js", "reactjs"}},
		{Name: "Angular"},
		{Name: "Vue", Aliases: []string{"vue.js", "vuejs"}},
		{Name: "Node.js", Aliases: []string{"nodejs", "node"}},
		{Name: "Django"},
		{Name: "Flask"},
		{Name: "Spring", Aliases: []string{"spring boot"}},
		{Name: "Rails", Aliases: []string{"ruby on rails"}},
		{Name: ".NET", Aliases: []string{"dotnet"}},
		{Name: "GraphQL"},
		{Name: "REST", Aliases: []string{"restful"}},
		{Name: "gRPC"},
		{Name: "HTML"},
		{Name: "CSS"},
		{Name: "PostgreSQL", Aliases: []string{"postgres"}},
		{Name: "MySQL"},
		{Name: "MongoDB", Aliases: []string{"mongo"}},
		{Name: "Redis"},
		{Name: "Elasticsearch"},
		{Name: "Kafka"},
		{Name: "RabbitMQ"},
		{Name: "SQLite"},
		{Name: "Oracle"},
		{Name: "DynamoDB"},
		{Name: "Cassandra"},
		{Name: "AWS", Aliases: []string{"amazon web services"}},
		{Name: "GCP", Aliases: []string{"google cloud"}},
		{Name: "Azure"},
		{Name: "Docker"},
		{Name: "Kubernetes", Aliases: []string{"k8s"}},
		{Name: "Terraform"},
		{Name: "Ansible"},
		{Name: "Jenkins"},
		{Name: "CI/CD", Aliases: []string{"cicd"}},
		{Name: "Git"},
		{Name: "Linux"},
		{Name: "Bash"},
		{Name: "Machine Learning", Aliases: []string{"ml"}},
		{Name: "Deep Learning"},
		{Name: "TensorFlow"},
		{Name: "PyTorch"},
		{Name: "Pandas"},
		{Name: "NumPy"},
		{Name: "Spark"},
		{Name: "Hadoop"},
		{Name: "Airflow"},
		{Name: "Tableau"},
		{Name: "Power BI"},
		{Name: "Excel"},
		{Name: "Jira"},
		{Name: "Agile"},
		{Name: "Scrum"},
		{Name: "Microservices"},
		{Name: "DevOps"},
		{Name: "Prometheus"},
		{Name: "Grafana"},
		{Name: "NGINX"},
		{Name: "Selenium"},
		{Name: "JUnit"},
		{Name: "Figma"},
	}
}
