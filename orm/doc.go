/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary key, usually taken from a Sequence.
* It may possess secondary indexes, unique (1:1) or not (1:N).
* Easy queries for one and iteration, exposed over the QueryRouter.

Values are stored using the codec package. Indexes keep references to
primary keys, never copies of the data.
*/
package orm
