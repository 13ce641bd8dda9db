// Package files is the repository of the FILE table: one row per card file
// in the cards directory.
//
//	repo := files.NewSQLiteRepository(tx)
//	id, _ := repo.Insert(ctx, &models.File{Name: "alice.vcf", ...})
//	f, _ := repo.GetByName(ctx, "alice.vcf")
//	_ = repo.DeleteByName(ctx, "alice.vcf") // CONTACT row goes by cascade
package files
