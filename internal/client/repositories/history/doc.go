// Package history persists completed uploads in the local SQLite database.
//
// Records are written once and listed newest first. Prune keeps the most
// recent N rows and is meant to run in the same transaction as Insert:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := history.NewSQLiteRepository(tx)
//	    if err := repo.Insert(ctx, rec); err != nil {
//	        return err
//	    }
//	    _, err := repo.Prune(ctx, 100)
//	    return err
//	})
package history
