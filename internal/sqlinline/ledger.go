package sqlinline

// Postgres statements for the ledger_slots table.

const QPGSchema = `--sql c199e8ab-0c10-41b9-a76a-708c86054dd0
create table if not exists ledger_slots (
    key text primary key,
    value numeric(39, 0) not null default 0 check (value >= 0),
    updated_at timestamptz not null default now()
);
`

const QPGSeedSlot = `--sql 78290c54-a475-42c4-899e-c73dca9e22b6
insert into ledger_slots(key, value)
values ($1::text, 0)
on conflict (key) do nothing;
`

const QPGLockSlot = `--sql e0527a40-ebaa-4c5e-acb5-b2cec989c050
select value::text
from ledger_slots
where key = $1::text
for update;
`

const QPGUpdateSlot = `--sql 176c84a9-a5e1-4ca6-b3ed-c42433ed0750
update ledger_slots
set value = $2::text::numeric, updated_at = now()
where key = $1::text;
`

const QPGSelectSlot = `--sql 2a9e5dfd-ebc9-4039-8106-010ab0554683
select coalesce((select value::text from ledger_slots where key = $1::text), '0');
`
