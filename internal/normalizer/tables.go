package normalizer

// Tables holds the closed lookup tables driving normalization. The defaults
// below were collected from query logs of the Thai/English career-advice
// corpus; deployments can override any table from configuration. Corrections
// are exact token lookups, keyword tables are scanned by containment so
// unsegmented Thai text still matches.
type Tables struct {
	// Corrections maps known misspellings to their corrected form.
	Corrections map[string]string
	// Tech maps technical/role terms to a canonical English keyword.
	Tech map[string]string
	// Job maps query-intent terms (salary, responsibilities, education ...)
	// to a canonical keyword.
	Job map[string]string
	// Resume maps resume/application terms to a canonical keyword.
	Resume map[string]string
	// Profile maps self/profile terms to a canonical keyword.
	Profile map[string]string
}

// DefaultTables returns the built-in lookup tables.
func DefaultTables() Tables {
	return Tables{
		Corrections: map[string]string{
			"devloper":    "developer",
			"developper":  "developer",
			"progammer":   "programmer",
			"programer":   "programmer",
			"enginer":     "engineer",
			"engeneer":    "engineer",
			"anlyst":      "analyst",
			"analist":     "analyst",
			"desinger":    "designer",
			"phyton":      "python",
			"pyhton":      "python",
			"javascipt":   "javascript",
			"fronend":     "frontend",
			"backent":     "backend",
			"fullstak":    "fullstack",
			"salery":      "salary",
			"sallary":     "salary",
			"resumee":     "resume",
			"interveiw":   "interview",
			"โปรแกรมเมอ":  "โปรแกรมเมอร์",
			"โปแกรมเมอร์": "โปรแกรมเมอร์",
			"เงินเดิอน":   "เงินเดือน",
			"เงิรเดือน":   "เงินเดือน",
		},
		Tech: map[string]string{
			"developer":          "developer",
			"นักพัฒนา":           "developer",
			"นักพัฒนาซอฟต์แวร์":  "developer",
			"programmer":         "programmer",
			"โปรแกรมเมอร์":       "programmer",
			"software engineer":  "software engineer",
			"วิศวกรซอฟต์แวร์":    "software engineer",
			"data scientist":     "data scientist",
			"นักวิทยาศาสตร์ข้อมูล": "data scientist",
			"data analyst":       "data analyst",
			"นักวิเคราะห์ข้อมูล": "data analyst",
			"devops":             "devops",
			"frontend":           "frontend",
			"backend":            "backend",
			"fullstack":          "fullstack",
			"ui designer":        "ui designer",
			"ux designer":        "ux designer",
			"tester":             "tester",
			"qa":                 "qa",
			"python":             "python",
			"javascript":         "javascript",
			"java":               "java",
			"golang":             "golang",
			"sql":                "sql",
			"security":           "security",
			"network":            "network",
			"cloud":              "cloud",
			"machine learning":   "machine learning",
		},
		Job: map[string]string{
			"เงินเดือน":      "salary",
			"salary":         "salary",
			"รายได้":         "salary",
			"ความรับผิดชอบ":  "responsibilities",
			"responsibility": "responsibilities",
			"หน้าที่":        "responsibilities",
			"ทำอะไร":         "responsibilities",
			"การศึกษา":       "education",
			"education":      "education",
			"เรียนจบ":        "education",
			"วุฒิ":           "degree",
			"ตำแหน่ง":        "position",
			"position":       "position",
			"อาชีพ":          "career",
			"career":         "career",
			"งาน":            "job",
			"job":            "job",
			"ทักษะ":          "skill",
			"skill":          "skill",
			"ประสบการณ์":     "experience",
			"experience":     "experience",
		},
		Resume: map[string]string{
			"resume":     "resume",
			"เรซูเม่":    "resume",
			"เรซูเม":     "resume",
			"cv":         "cv",
			"สมัครงาน":   "application",
			"ใบสมัคร":    "application",
			"apply":      "application",
			"interview":  "interview",
			"สัมภาษณ์":   "interview",
			"portfolio":  "portfolio",
			"พอร์ตโฟลิโอ": "portfolio",
			"cover letter": "cover letter",
		},
		Profile: map[string]string{
			"โปรไฟล์":      "profile",
			"profile":      "profile",
			"ตัวเอง":       "myself",
			"ของฉัน":       "myself",
			"my skills":    "myself",
			"ถนัดอะไร":     "strengths",
			"ความถนัด":     "strengths",
			"จุดแข็ง":      "strengths",
			"เหมาะกับอะไร": "fit",
			"เหมาะกับงาน":  "fit",
		},
	}
}

// stopTokens are trivial tokens dropped from the keyword fallback, including
// trailing interrogative particles.
var stopTokens = map[string]struct{}{
	"how": {}, "is": {}, "it": {}, "a": {}, "an": {}, "the": {},
	"what": {}, "do": {}, "does": {}, "can": {}, "i": {}, "to": {},
	"ไหม": {}, "มั้ย": {}, "หรอ": {}, "เหรอ": {}, "อย่างไร": {},
	"ยังไง": {}, "คือ": {}, "อะไร": {}, "ครับ": {}, "ค่ะ": {}, "คะ": {},
	"ได้ไหม": {}, "บ้าง": {},
}
