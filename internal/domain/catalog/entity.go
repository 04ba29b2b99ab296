package catalog

type Department struct {
	DeptNo   string `json:"dept_no"`
	DeptName string `json:"dept_name"`
}

type Title struct {
	Title string `json:"title"`
}
