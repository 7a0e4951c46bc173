package models

// AgeBucket is one bar of the student age distribution chart.
type AgeBucket struct {
	Rango    string `json:"rango"`
	Cantidad int    `json:"cantidad"`
}

// CategoryCount is one slice of the courses-by-category chart.
type CategoryCount struct {
	Categoria string `json:"categoria"`
	Cantidad  int    `json:"cantidad"`
}

// Statistics holds the admin dashboard figures.
type Statistics struct {
	EdadDistribucion   []AgeBucket     `json:"edadDistribucion"`
	CursosPorCategoria []CategoryCount `json:"cursosPorCategoria"`
	TotalEstudiantes   int             `json:"totalEstudiantes"`
	TotalCursos        int             `json:"totalCursos"`
}
