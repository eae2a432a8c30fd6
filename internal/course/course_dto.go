package course

type CourseResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Professor string `json:"professor"`
	Credits   int    `json:"credits"`
	Time      string `json:"time"`
	Capacity  int    `json:"capacity"`
	Enrolled  int    `json:"enrolled"`
	Full      bool   `json:"full"`
}

type RegisteredResponse struct {
	Courses      []CourseResponse `json:"courses"`
	Count        int              `json:"count"`
	MaxCourses   int              `json:"max_courses"`
	TotalCredits int              `json:"total_credits"`
}
