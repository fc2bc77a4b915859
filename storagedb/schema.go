// Copyright (c) 2025 The Starkbal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storagedb

// contract/slot dictionaries plus the slot-write log
const storageTableSchema = `
create table if not exists contract_addresses (
	id integer primary key,
	contract_address blob not null unique
);

create table if not exists storage_addresses (
	id integer primary key,
	storage_address blob not null unique
);

create table if not exists storage_updates (
	id integer primary key,
	contract_address_id integer not null,
	storage_address_id integer not null,
	storage_value blob not null,
	block_number integer not null,
	foreign key (contract_address_id) references contract_addresses(id),
	foreign key (storage_address_id) references storage_addresses(id)
);

CREATE INDEX if not exists contractSlotIndex on storage_updates(contract_address_id, storage_address_id, block_number);
`
