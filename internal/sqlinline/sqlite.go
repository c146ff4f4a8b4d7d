package sqlinline

// SQLite statements for the ledger_slots table. Values are stored as
// decimal text because SQLite integers stop at 64 bits.

const QSQLiteSchema = `--sql 40e64557-bfbf-4126-9450-9c52e3537ea0
create table if not exists ledger_slots (
    key text primary key,
    value text not null,
    updated_at integer not null
);
`

const QSQLiteSelectSlot = `--sql 6b62673f-e0b4-4372-b1d3-7a8166b340a3
select value from ledger_slots where key = ?;
`

const QSQLiteUpsertSlot = `--sql c6974d96-6ee9-457c-8229-db5690362f0e
insert into ledger_slots(key, value, updated_at)
values (?, ?, ?)
on conflict(key) do update set value = excluded.value, updated_at = excluded.updated_at;
`
