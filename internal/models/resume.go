package models

// ResumeData is the decoded shape of a structured-parsing response. The six
// top-level sections mirror the JSON schema the completion service is
// constrained by; all of them must be present for a candidate to commit.
type ResumeData struct {
	PersonalInfo   PersonalInfo     `json:"personal_info"`
	Education      []Education      `json:"education"`
	WorkExperience []WorkExperience `json:"work_experience"`
	Skills         []string         `json:"skills"`
	Projects       []Project        `json:"projects"`
	Certificates   []Certificate    `json:"certificates"`
}

type PersonalInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type WorkExperience struct {
	JobTitle         string `json:"job_title"`
	Company          string `json:"company"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Responsibilities string `json:"responsibilities"`
}

type Project struct {
	ProjectName  string `json:"project_name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
}

type Certificate struct {
	CertificateName string `json:"certificate_name"`
	IssuedBy        string `json:"issued_by"`
	Year            string `json:"year"`
}
