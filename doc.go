// Package gom persists in-memory entities to SQLite: declare entity schemas
// once against a Registry (package schema), then use a Repository to
// migrate, query, and save Resources built from those schemas (spec.md §3).
//
// A minimal program:
//
//	reg := schema.NewRegistry()
//	item, _ := reg.Register("Item", "items", "",
//		field.Int64("id").Primary().AutoGenerated().Descriptor(),
//		field.Text("name").Descriptor(),
//	)
//
//	a := adapter.New("app.db")
//	if err := a.Open(); err != nil {
//		log.Fatal(err)
//	}
//	defer a.Close()
//
//	repo := gom.NewRepository(a, reg)
//	if err := repo.AutomaticMigrate(ctx, 1, []string{"Item"}); err != nil {
//		log.Fatal(err)
//	}
//
//	res, _ := repo.New("Item")
//	res.Set("name", "widget")
//	if err := res.Save(ctx); err != nil {
//		log.Fatal(err)
//	}
package gom
