package directory

// Default returns the built-in directory used when no file is configured.
func Default() *Directory {
	return &Directory{
		Depots: []Depot{
			{ID: "cartago", Name: "Cartago"},
			{ID: "alajuela", Name: "Alajuela"},
			{ID: "guapiles", Name: "Guápiles"},
			{ID: "transportadora", Name: "Transportadora"},
			{ID: "san-carlos", Name: "San Carlos"},
			{ID: "rio-claro", Name: "Rio Claro"},
			{ID: "perez-zeledon", Name: "Perez Zeledon"},
			{ID: "nicoya", Name: "Nicoya"},
			{ID: "la-cruz", Name: "La Cruz"},
		},
		Segments: []Segment{
			{ID: SegmentBoxTruck, Name: "Box Truck", Type: "Box Truck", Aliases: []string{"hinos", "hino"}},
			{ID: SegmentBulk, Name: "Bulk", Type: "Bulk", Aliases: []string{"graneles", "granel"}},
			{ID: SegmentOther, Name: "Other", Type: "Other", Aliases: []string{"otros", "otro"}},
		},
		Supervisors: []Supervisor{
			{ID: "sup-miguel-gomez", Name: "Miguel Gomez", Depot: "cartago", Segment: SegmentBoxTruck},
			{ID: "sup-erick-valerin", Name: "Erick Valerin", Depot: "cartago", Segment: SegmentBulk},
			{ID: "sup-enrique-herrera", Name: "Enrique Herrera", Depot: "guapiles"},
			{ID: "sup-raul-retana", Name: "Raul Retana", Depot: "guapiles", Segment: SegmentBoxTruck},
			{ID: "sup-adrian-veita", Name: "Adrian Veita", Depot: "perez-zeledon"},
			{ID: "sup-luis-solis", Name: "Luis Solis", Depot: "perez-zeledon"},
			{ID: "sup-daniel-salas", Name: "Daniel Salas", Depot: "la-cruz"},
			{ID: "sup-roberto-chirino", Name: "Roberto Chirino", Depot: "la-cruz"},
			{ID: "sup-cristian-bolanos", Name: "Cristian Bolaños", Depot: "alajuela", Segment: SegmentBulk},
			{ID: "sup-roberto-vargas", Name: "Roberto Vargas", Depot: "alajuela", Segment: SegmentBoxTruck},
			{ID: "sup-cristofer-carranza", Name: "Cristofer Carranza", Depot: "san-carlos"},
			{ID: "sup-victor-cordero", Name: "Victor Cordero", Depot: "rio-claro"},
			{ID: "sup-luis-rivas", Name: "Luis Rivas", Depot: "nicoya"},
			{ID: "sup-ronny-garita", Name: "Ronny Garita", Depot: "transportadora"},
		},
	}
}
